// Package wallet derives the agent's Solana keypair from its BIP-39
// mnemonic. The mnemonic is the only wallet secret a project carries; the
// keypair is re-derived on every use and never persisted.
package wallet

import (
	"crypto/ed25519"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gagliardetto/solana-go"
	bip39 "github.com/tyler-smith/go-bip39"
)

// DerivationPath is the standard Solana account path.
const DerivationPath = "m/44'/501'/0'/0'"

// EnvMnemonic names the project secret holding the BIP-39 phrase.
const EnvMnemonic = "MNEMONIC"

// KeypairFromMnemonic derives the agent keypair from a BIP-39 mnemonic
// along the standard Solana path.
func KeypairFromMnemonic(mnemonic string) (solana.PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(normalize(mnemonic), "")
	if err != nil {
		return nil, errors.WithMessage(err, "invalid mnemonic")
	}

	derived, err := deriveSeed(seed, DerivationPath)
	if err != nil {
		return nil, err
	}

	return solana.PrivateKey(ed25519.NewKeyFromSeed(derived)), nil
}

// AddressFromMnemonic returns the base58 public address of the agent
// wallet.
func AddressFromMnemonic(mnemonic string) (string, error) {
	key, err := KeypairFromMnemonic(mnemonic)
	if err != nil {
		return "", err
	}
	return key.PublicKey().String(), nil
}

func normalize(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}
