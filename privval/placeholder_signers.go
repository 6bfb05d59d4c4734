package privval

import (
	"github.com/Finschia/cardano-vrf/crypto/vrf"
)

// placeholderSigner fails every operation with InvalidInput. The PKCS#11
// and cloud HSM backends are only configured, never dialed.
type placeholderSigner struct {
	name string
}

func (p placeholderSigner) err() error {
	return vrf.NewErrInvalidInput(p.name + " not yet implemented")
}

func (p placeholderSigner) Prove(string, []byte) ([]byte, error) { return nil, p.err() }

func (p placeholderSigner) GetPublicKey(string) ([]byte, error) { return nil, p.err() }

func (p placeholderSigner) GenerateKeypair(string) ([]byte, error) { return nil, p.err() }

func (p placeholderSigner) DeleteKey(string) error { return p.err() }

func (p placeholderSigner) ListKeys() ([]string, error) { return nil, p.err() }

func (p placeholderSigner) HealthCheck() error { return p.err() }

type Pkcs11Signer struct {
	placeholderSigner
	Config Pkcs11Config
}

func NewPkcs11Signer(cfg Pkcs11Config) *Pkcs11Signer {
	return &Pkcs11Signer{placeholderSigner{"PKCS#11"}, cfg}
}

type AwsCloudHsmSigner struct {
	placeholderSigner
	Config AwsCloudHsmConfig
}

func NewAwsCloudHsmSigner(cfg AwsCloudHsmConfig) *AwsCloudHsmSigner {
	return &AwsCloudHsmSigner{placeholderSigner{"AWS CloudHSM"}, cfg}
}

type AzureKeyVaultSigner struct {
	placeholderSigner
	Config AzureKeyVaultConfig
}

func NewAzureKeyVaultSigner(cfg AzureKeyVaultConfig) *AzureKeyVaultSigner {
	return &AzureKeyVaultSigner{placeholderSigner{"Azure Key Vault"}, cfg}
}

var (
	_ Signer = (*Pkcs11Signer)(nil)
	_ Signer = (*AwsCloudHsmSigner)(nil)
	_ Signer = (*AzureKeyVaultSigner)(nil)
)
