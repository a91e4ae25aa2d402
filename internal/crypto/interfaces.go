package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer protects short secrets (session tokens) stored on the local disk.
//
// Sealed values are Base64 strings of nonce || ciphertext and can only be
// opened with the same secret they were sealed with.
type Sealer interface {
	// Seal encrypts plaintext and returns a Base64 blob.
	Seal(plaintext string) (string, error)

	// Open decrypts a blob produced by Seal. It returns ErrOpenFailed when the
	// blob was sealed under another secret or was tampered with.
	Open(sealed string) (string, error)
}
