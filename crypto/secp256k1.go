package crypto

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the size of a recoverable secp256k1 signature
// [R || S || V], with V in {0, 1}.
const SignatureLength = 65

// AddressLength is the size of an account address in bytes.
const AddressLength = 20

var (
	errHashLength = errors.New("crypto: hash must be 32 bytes")
	errSigLength  = fmt.Errorf("crypto: signature must be %d bytes [R || S || V]", SignatureLength)
)

// GenerateKey generates a new secp256k1 private key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return gethcrypto.GenerateKey()
}

// HexToECDSA parses a hex-encoded secp256k1 private key.
func HexToECDSA(hexkey string) (*ecdsa.PrivateKey, error) {
	return gethcrypto.HexToECDSA(hexkey)
}

// Sign calculates a recoverable ECDSA signature over a 32-byte digest.
func Sign(hash []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if len(hash) != HashLength {
		return nil, errHashLength
	}
	return gethcrypto.Sign(hash, prv)
}

// SigToPub recovers the public key that produced sig over hash.
func SigToPub(hash, sig []byte) (*ecdsa.PublicKey, error) {
	if len(hash) != HashLength {
		return nil, errHashLength
	}
	if len(sig) != SignatureLength {
		return nil, errSigLength
	}
	return gethcrypto.SigToPub(hash, sig)
}

// Ecrecover recovers the 65-byte uncompressed public key from hash and
// signature.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := SigToPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return gethcrypto.FromECDSAPub(pub), nil
}

// PubkeyToAddress derives the account address from a public key.
// Address = Keccak256(pubkey[1:])[12:]
func PubkeyToAddress(p ecdsa.PublicKey) [AddressLength]byte {
	return gethcrypto.PubkeyToAddress(p)
}

// RecoverAddress returns the address of the key that produced sig over hash.
func RecoverAddress(hash, sig []byte) ([AddressLength]byte, error) {
	pub, err := SigToPub(hash, sig)
	if err != nil {
		return [AddressLength]byte{}, err
	}
	return PubkeyToAddress(*pub), nil
}
