package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "salesscout"

	AccountRegistry   = "registry-token"
	AccountOpenRouter = "openrouter-key"
	AccountGateway    = "gateway-secret"
)

// Env fallbacks, checked after the keyring. Containers and CI rarely have
// a keychain daemon.
const (
	EnvRegistry   = "SALESSCOUT_REGISTRY_TOKEN"
	EnvOpenRouter = "SALESSCOUT_OPENROUTER_KEY"
	EnvGateway    = "SALESSCOUT_GATEWAY_SECRET"
)

func Get(account, envVar string) (string, error) {
	pw, err := keyring.Get(KeyringService, account)
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v, nil
	}
	return "", errors.New("secret " + account + " not found (set it in keychain or via " + envVar + ")")
}

func Set(account, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

func RegistryToken() (string, error) { return Get(AccountRegistry, EnvRegistry) }
func OpenRouterKey() (string, error) { return Get(AccountOpenRouter, EnvOpenRouter) }
func GatewaySecret() (string, error) { return Get(AccountGateway, EnvGateway) }
