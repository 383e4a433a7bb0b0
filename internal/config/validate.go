package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy: trimmed strings,
// defaults filled in, plus everything a save should refuse or warn about.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trim := func(s *string) { *s = strings.TrimSpace(*s) }
	trim(&out.App.DataDir)
	trim(&out.Registry.BaseURL)
	trim(&out.Search.BaseURL)
	trim(&out.Search.Model)
	trim(&out.Search.RenderModel)
	trim(&out.Messenger.WebhookURL)
	trim(&out.Messenger.BotID)
	trim(&out.Messenger.ClientID)
	trim(&out.Product.Description)

	if out.Messenger.MaxPartLen == 0 {
		out.Messenger.MaxPartLen = 4000
	}
	if out.Search.TimeoutSeconds == 0 {
		out.Search.TimeoutSeconds = 90
	}
	if out.Search.RenderModel == "" {
		out.Search.RenderModel = out.Search.Model
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	checkURL := func(name, raw string, required bool) {
		if raw == "" {
			if required {
				res.addErr("%s is required", name)
			}
			return
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("%s must be an absolute URL: %q", name, raw)
		}
	}
	checkURL("registry.base_url", out.Registry.BaseURL, false)
	checkURL("search.base_url", out.Search.BaseURL, false)
	checkURL("messenger.webhook_url", out.Messenger.WebhookURL, false)

	if out.Search.Model == "" {
		res.addErr("search.model is required")
	}
	if out.Search.TimeoutSeconds < 10 {
		res.addWarn("search.timeout_seconds is very low (%d); deep-research models often need minutes.", out.Search.TimeoutSeconds)
	}

	if out.Messenger.WebhookURL == "" {
		res.addWarn("messenger.webhook_url is empty; dossiers cannot be delivered until it is set.")
	}
	if out.Messenger.WebhookURL != "" && out.Messenger.BotID == "" {
		res.addErr("messenger.bot_id is required when messenger.webhook_url is set")
	}
	if out.Messenger.MaxPartLen < 500 {
		res.addWarn("messenger.max_part_len is very low (%d); dossiers will arrive in many small pieces.", out.Messenger.MaxPartLen)
	}
	if out.Messenger.MaxPartLen > 10000 {
		res.addWarn("messenger.max_part_len above 10000 is usually rejected by the chat platform.")
	}

	if out.Product.Description == "" {
		res.addWarn("product.description is empty; dossiers will skip the fit-analysis section.")
	}

	return out, res
}
