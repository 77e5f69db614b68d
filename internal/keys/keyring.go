package keys

import (
	"fmt"
	"io"
	"strings"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	sdkkeyring "github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Importer recovers mnemonics into a cosmos-sdk keyring that pocketd can read.
type Importer struct {
	kr sdkkeyring.Keyring
}

func newCodec() codec.Codec {
	registry := codectypes.NewInterfaceRegistry()
	cryptocodec.RegisterInterfaces(registry)
	return codec.NewProtoCodec(registry)
}

// NewImporter opens the keyring under dir with the given backend
// ("test", "file", "os"). input answers passphrase prompts for the file backend.
func NewImporter(dir, backend string, input io.Reader) (*Importer, error) {
	if input == nil {
		input = strings.NewReader("")
	}
	kr, err := sdkkeyring.New(sdk.KeyringServiceName(), backend, dir, input, newCodec())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s keyring in %s: %w", backend, dir, err)
	}
	return &Importer{kr: kr}, nil
}

// NewInMemoryImporter returns an Importer backed by an in-memory keyring.
func NewInMemoryImporter() *Importer {
	return &Importer{kr: sdkkeyring.NewInMemory(newCodec())}
}

// Import stores mnemonic under name and returns the pokt address of the key.
// An existing key with the same name is left untouched.
func (i *Importer) Import(name, mnemonic string) (string, error) {
	if _, err := i.kr.Key(name); err == nil {
		return "", &KeyExistsError{Name: name}
	}
	record, err := i.kr.NewAccount(name, mnemonic, sdkkeyring.DefaultBIP39Passphrase, HDPath, hd.Secp256k1)
	if err != nil {
		return "", fmt.Errorf("failed to recover key %s: %w", name, err)
	}
	addr, err := record.GetAddress()
	if err != nil {
		return "", fmt.Errorf("failed to get address for %s: %w", name, err)
	}
	return EncodeAddress(addr)
}

// KeyExistsError is returned when the keyring already holds a key with the name.
type KeyExistsError struct {
	Name string
}

func (e *KeyExistsError) Error() string {
	return fmt.Sprintf("key %q already exists in keyring", e.Name)
}
