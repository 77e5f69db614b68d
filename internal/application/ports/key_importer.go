package ports

// KeyImporter recovers a mnemonic into a keyring under name and returns the
// resulting account address.
type KeyImporter interface {
	Import(name, mnemonic string) (string, error)
}
