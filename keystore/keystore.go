// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package keystore provides passphrase-encrypted storage of signing key
// seeds. Seeds are sealed with XChaCha20-Poly1305 under an argon2id-derived
// key and wrapped in a versioned CBOR envelope.
package keystore

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blinklabs-io/gostellar/keypair"
	"github.com/blinklabs-io/gostellar/strkey"

	_cbor "github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	envelopeVersion = 1
	saltSize        = 16

	kdfName     = "argon2id"
	kdfTime     = 2
	kdfMemoryKB = 64 * 1024
	kdfThreads  = 1

	// Upper bounds on envelope-supplied KDF parameters. A hostile key file
	// must not be able to demand arbitrary time or memory.
	maxKDFTime     = 8
	maxKDFMemoryKB = 256 * 1024
	maxKDFThreads  = 4
)

// filePrefix marks encrypted key files so they can be recognized before any
// CBOR decoding
var filePrefix = []byte("GSKEY1\n")

var (
	// ErrAuthFailed is returned when decryption fails, usually meaning a
	// wrong passphrase
	ErrAuthFailed = errors.New("keystore authentication failed")
	// ErrInvalidEnvelope is returned for data that is not a keystore
	// envelope or carries unsupported parameters
	ErrInvalidEnvelope = errors.New("keystore envelope is invalid")
)

type envelope struct {
	_           struct{} `cbor:",toarray"`
	Version     uint32
	KDF         string
	KDFTime     uint32
	KDFMemoryKB uint32
	KDFThreads  uint8
	Salt        []byte
	Nonce       []byte
	Ciphertext  []byte
}

// Encrypt seals the key pair's seed under the given passphrase and returns
// the serialized envelope
func Encrypt(passphrase string, kp *keypair.KeyPair) ([]byte, error) {
	seedStr, err := kp.Seed()
	if err != nil {
		return nil, err
	}
	seed, err := strkey.Decode(strkey.VersionByteSeed, seedStr)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(seed)
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key := deriveKey(passphrase, salt)
	defer zeroBytes(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	env := envelope{
		Version:     envelopeVersion,
		KDF:         kdfName,
		KDFTime:     kdfTime,
		KDFMemoryKB: kdfMemoryKB,
		KDFThreads:  kdfThreads,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  aead.Seal(nil, nonce, seed, nil),
	}
	encMode, err := _cbor.EncOptions{
		Sort: _cbor.SortCoreDeterministic,
	}.EncMode()
	if err != nil {
		return nil, err
	}
	raw, err := encMode.Marshal(&env)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, filePrefix...), raw...), nil
}

// Decrypt opens a serialized envelope with the given passphrase and rebuilds
// the key pair from the recovered seed
func Decrypt(passphrase string, data []byte) (*keypair.KeyPair, error) {
	if !bytes.HasPrefix(data, filePrefix) {
		return nil, ErrInvalidEnvelope
	}
	var env envelope
	if err := _cbor.Unmarshal(data[len(filePrefix):], &env); err != nil {
		return nil, ErrInvalidEnvelope
	}
	if env.Version != envelopeVersion || env.KDF != kdfName {
		return nil, ErrInvalidEnvelope
	}
	if env.KDFTime == 0 || env.KDFTime > maxKDFTime ||
		env.KDFMemoryKB == 0 || env.KDFMemoryKB > maxKDFMemoryKB ||
		env.KDFThreads == 0 || env.KDFThreads > maxKDFThreads {
		return nil, ErrInvalidEnvelope
	}
	if len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrInvalidEnvelope
	}
	key := argon2.IDKey(
		[]byte(passphrase),
		env.Salt,
		env.KDFTime,
		env.KDFMemoryKB,
		env.KDFThreads,
		chacha20poly1305.KeySize,
	)
	defer zeroBytes(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	seed, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	defer zeroBytes(seed)
	if len(seed) != keypair.SeedSize {
		return nil, ErrInvalidEnvelope
	}
	var rawSeed [keypair.SeedSize]byte
	copy(rawSeed[:], seed)
	return keypair.FromRawSeed(rawSeed)
}

// Save encrypts the key pair and writes it to path with owner-only
// permissions. The write is atomic via a temp file and rename
func Save(path string, passphrase string, kp *keypair.KeyPair) error {
	data, err := Encrypt(passphrase, kp)
	if err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".keystore-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	if err := tmpFile.Chmod(0o600); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Load reads an encrypted key file and decrypts it with the given passphrase
func Load(path string, passphrase string) (*keypair.KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return Decrypt(passphrase, data)
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		kdfTime,
		kdfMemoryKB,
		kdfThreads,
		chacha20poly1305.KeySize,
	)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
