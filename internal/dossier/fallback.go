package dossier

import (
	"fmt"
	"strings"

	"salesscout-engine/internal/domain"
)

const notFound = "не найдено"

const sectionRule = "═══════════════════════════════════"

// RenderFallback builds the deterministic plain-text dossier from the
// registry record and scraped contacts only. It must always produce a
// usable document, including when the registry record is absent: missing
// fields render as explicit "не найдено", never as a panic or a blank.
func RenderFallback(bundle domain.DossierBundle) string {
	name := bundle.Registry.DisplayName()
	if name == "" {
		name = bundle.Identity.Name
	}
	if name == "" {
		name = notFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 ДОСЬЕ КОМПАНИИ\n\n🏢 %s\n", name)
	if bundle.Identity.TaxID != "" {
		fmt.Fprintf(&b, "🔢 ИНН: %s\n", bundle.Identity.TaxID)
	}
	fmt.Fprintf(&b, "📍 %s\n", orNotFound(registryField(bundle.Registry, func(r *domain.RegistryRecord) string { return r.Address.Full })))

	director := registryField(bundle.Registry, func(r *domain.RegistryRecord) string {
		if r.Director.Name == "" {
			return ""
		}
		return fmt.Sprintf("%s (%s)", r.Director.Name, r.Director.Title)
	})
	fmt.Fprintf(&b, "👤 Директор: %s\n", orNotFound(director))

	status := registryField(bundle.Registry, func(r *domain.RegistryRecord) string {
		if r.Status == "" {
			return ""
		}
		if r.RegistrationDate != "" {
			return fmt.Sprintf("%s с %s", r.Status, r.RegistrationDate)
		}
		return r.Status
	})
	fmt.Fprintf(&b, "✅ Статус: %s\n", orNotFound(status))

	b.WriteString("\n" + sectionRule + "\n\n🌐 ОНЛАЙН-ПРИСУТСТВИЕ\n")
	fmt.Fprintf(&b, "• Сайт: %s\n", orNotFound(bundle.OnlinePresence.Website))
	fmt.Fprintf(&b, "• VK: %s\n", orNotFound(bundle.OnlinePresence.VK))
	fmt.Fprintf(&b, "• Telegram: %s\n", orNotFound(bundle.OnlinePresence.Telegram))

	fmt.Fprintf(&b, "\n📞 Телефоны: %s\n", orNotFound(strings.Join(bundle.SiteContacts.Phones, ", ")))
	fmt.Fprintf(&b, "📧 Email: %s\n", orNotFound(strings.Join(bundle.SiteContacts.Emails, ", ")))

	b.WriteString("\n" + sectionRule + "\n\nℹ️ Полный анализ временно недоступен.\nИспользуйте найденные контакты для связи с компанией.")

	return b.String()
}

func registryField(r *domain.RegistryRecord, f func(*domain.RegistryRecord) string) string {
	if r == nil {
		return ""
	}
	return f(r)
}

func orNotFound(s string) string {
	if strings.TrimSpace(s) == "" {
		return notFound
	}
	return s
}
