// Package keys derives Shannon account addresses from BIP39 mnemonics.
package keys

import (
	"errors"
	"fmt"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/cosmos/go-bip39"

	"github.com/altuslabsxyz/supplier-ops/internal/network"
)

const (
	// HDPath is the derivation path used for every account (coin type 118).
	HDPath = "m/44'/118'/0'/0/0"

	// MnemonicEntropyBits yields 24-word mnemonics.
	MnemonicEntropyBits = 256

	addressLength = 20
)

// ErrInvalidMnemonic is returned when a mnemonic fails the BIP39 checksum.
var ErrInvalidMnemonic = errors.New("invalid bip39 mnemonic")

// Account is a freshly generated key.
type Account struct {
	Address  string
	Mnemonic string
}

// NewMnemonic returns a random 24-word English mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("failed to read entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to build mnemonic: %w", err)
	}
	return mnemonic, nil
}

// DeriveAddress returns the pokt bech32 address of the secp256k1 key at HDPath.
func DeriveAddress(mnemonic string) (string, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return "", ErrInvalidMnemonic
	}
	derived, err := hd.Secp256k1.Derive()(mnemonic, "", HDPath)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	priv := hd.Secp256k1.Generate()(derived)
	return EncodeAddress(priv.PubKey().Address())
}

// Generate creates a new mnemonic and its address.
func Generate() (*Account, error) {
	mnemonic, err := NewMnemonic()
	if err != nil {
		return nil, err
	}
	addr, err := DeriveAddress(mnemonic)
	if err != nil {
		return nil, err
	}
	return &Account{Address: addr, Mnemonic: mnemonic}, nil
}

// EncodeAddress bech32-encodes raw address bytes with the pokt prefix.
func EncodeAddress(bz []byte) (string, error) {
	addr, err := bech32.ConvertAndEncode(network.Bech32Prefix, bz)
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	return addr, nil
}

// ValidateAddress checks that addr is a 20-byte pokt bech32 account address.
func ValidateAddress(addr string) error {
	hrp, bz, err := bech32.DecodeAndConvert(addr)
	if err != nil {
		return fmt.Errorf("malformed address %q: %w", addr, err)
	}
	if hrp != network.Bech32Prefix {
		return fmt.Errorf("address %q has prefix %q, want %q", addr, hrp, network.Bech32Prefix)
	}
	if len(bz) != addressLength {
		return fmt.Errorf("address %q has %d bytes, want %d", addr, len(bz), addressLength)
	}
	return nil
}
