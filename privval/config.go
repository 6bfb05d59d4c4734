package privval

import (
	"fmt"

	"github.com/Finschia/cardano-vrf/crypto/vrf"
)

// Config selects a signer backend. It is one of SoftwareConfig,
// Pkcs11Config, AwsCloudHsmConfig or AzureKeyVaultConfig.
type Config interface {
	Backend() string
	isConfig()
}

type SoftwareConfig struct {
	KeyStoragePath string
}

type Pkcs11Config struct {
	LibraryPath string
	SlotID      uint64
	Pin         string
}

type AwsCloudHsmConfig struct {
	ClusterID string
	User      string
	Password  string
}

type AzureKeyVaultConfig struct {
	VaultURL     string
	ClientID     string
	ClientSecret string
	TenantID     string
}

const (
	BackendSoftware      = "software"
	BackendPkcs11        = "pkcs11"
	BackendAwsCloudHsm   = "aws-cloudhsm"
	BackendAzureKeyVault = "azure-keyvault"
)

func (SoftwareConfig) Backend() string      { return BackendSoftware }
func (Pkcs11Config) Backend() string        { return BackendPkcs11 }
func (AwsCloudHsmConfig) Backend() string   { return BackendAwsCloudHsm }
func (AzureKeyVaultConfig) Backend() string { return BackendAzureKeyVault }

func (SoftwareConfig) isConfig()      {}
func (Pkcs11Config) isConfig()        {}
func (AwsCloudHsmConfig) isConfig()   {}
func (AzureKeyVaultConfig) isConfig() {}

// NewSigner builds the signer for cfg. Options only apply to the software
// backend.
func NewSigner(cfg Config, opts ...FileSignerOption) (Signer, error) {
	switch c := cfg.(type) {
	case SoftwareConfig:
		return NewFileSigner(c.KeyStoragePath, opts...)
	case Pkcs11Config:
		return NewPkcs11Signer(c), nil
	case AwsCloudHsmConfig:
		return NewAwsCloudHsmSigner(c), nil
	case AzureKeyVaultConfig:
		return NewAzureKeyVaultSigner(c), nil
	case nil:
		return nil, vrf.NewErrInvalidInput("no signer config")
	default:
		return nil, vrf.NewErrInvalidInput(fmt.Sprintf("unknown signer backend %T", cfg))
	}
}
