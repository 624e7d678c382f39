package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// SLIP-0010 ed25519 key derivation. Only hardened indexes are defined for
// ed25519, so every path segment must carry the ' marker.

const hardenedOffset uint32 = 0x80000000

var ed25519SeedKey = []byte("ed25519 seed")

func deriveSeed(seed []byte, path string) ([]byte, error) {
	indexes, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	key, chain := masterKey(seed)
	for _, index := range indexes {
		key, chain = childKey(key, chain, index)
	}
	return key, nil
}

func masterKey(seed []byte) (key, chain []byte) {
	mac := hmac.New(sha512.New, ed25519SeedKey)
	_, _ = mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

func childKey(key, chain []byte, index uint32) (childKeyBytes, childChain []byte) {
	data := make([]byte, 0, 1+len(key)+4)
	data = append(data, 0x00)
	data = append(data, key...)
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, chain)
	_, _ = mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

func parsePath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, errors.Newf("invalid derivation path: %s", path)
	}

	indexes := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		raw, hardened := strings.CutSuffix(part, "'")
		if !hardened {
			return nil, errors.Newf("ed25519 derivation requires hardened segments: %s", part)
		}
		index, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || index >= uint64(hardenedOffset) {
			return nil, errors.Newf("invalid derivation path segment: %s", part)
		}
		indexes = append(indexes, uint32(index)|hardenedOffset)
	}
	return indexes, nil
}
