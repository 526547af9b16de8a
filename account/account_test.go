// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/fault"
)

const (
	testSeed     = "edsk31vznjHSSpGExDMHYASz45VZqXN4DPxvsa4hAyY8dHM28cZzp6"
	testExpanded = "edskRhxswacLW6jF6ULavDdzwqnKJVS4UcDTNiCyiH6H8ZNnn2pmNviL7pRNz9kRxxaWQFzEQEcZExGHKbwmuaAcoMegj5T99z"
	testPublic   = "edpkuSLWfVU1Vq7Jg9FucPyKmma6otcMHac9zG4oU1KMHSTBpJuGQ2"
	testAddress  = "tz1TGu6TN5GSez2ndXXeDX6LgUDvLzPLqgYV"
	testHello    = "edsigtcvAJ6VtRWwoinwgN27KfGgQxcWTb9AoaqmpbFue8MMS8ajqgpvNnfbYKrq6eSzFgpqZsWnFnGRFK36QH3X4Jq4ZnQhRyD"

	// a key and signature produced by an external wallet over "Hello world"
	walletPublic    = "edpkuDMUm7Y53wp4gxeLBXuiAhXZrLn8XB1R83ksvvesH8Lp8bmCfK"
	walletAddress   = "tz1QFD9WqLWZmmAuqnnTPPUjfauitYEWdshv"
	walletSignature = "edsigu1mRCtZquLvspcxaYXVZdsKKSqHnXevnrmh1T63Dq1Rr8M1giVLvapiDFK6TQCEyY6xytdGnKgZyVSHDVnub7puy54bD1y"
)

func TestPublicKeyHash(t *testing.T) {
	publicKey, err := account.PublicKeyFromBase58(testPublic)
	assert.Nil(t, err, "public key error")
	assert.Equal(t, account.ED25519, publicKey.KeyType(), "key type")
	assert.Equal(t, testPublic, publicKey.String(), "public key round trip")

	pkh := publicKey.Hash()
	assert.True(t, pkh.IsValid(), "hash should be valid")
	assert.Equal(t, testAddress, pkh.String(), "wrong address")

	parsed, err := account.PublicKeyHashFromBase58(testAddress)
	assert.Nil(t, err, "address error")
	assert.Equal(t, pkh, parsed, "address should compare equal")

	wallet, err := account.PublicKeyFromBase58(walletPublic)
	assert.Nil(t, err, "wallet key error")
	assert.Equal(t, walletAddress, wallet.Hash().String(), "wrong wallet address")
	assert.NotEqual(t, pkh, wallet.Hash(), "distinct keys give distinct addresses")

	var zero account.PublicKeyHash
	assert.False(t, zero.IsValid(), "zero value should not be valid")
	assert.Equal(t, "", zero.String(), "zero value should not render")
}

func TestPublicKeyHashInvalid(t *testing.T) {
	invalid := []struct {
		s     string
		class func(error) bool
	}{
		{"", fault.IsErrInvalid},
		{"tz1TGu6TN5GSez2ndXXeDX6LgUDvLzPLqgYW", fault.IsErrInvalid},
		{"KT1ThEdxfUcWUwqsdergy3QnbCWGHSUHeHJq", fault.IsErrInvalid},
		{testPublic, fault.IsErrInvalid},
	}
	for i, item := range invalid {
		_, err := account.PublicKeyHashFromBase58(item.s)
		assert.Error(t, err, "%d: expected an error for %q", i, item.s)
		assert.True(t, item.class(err), "%d: wrong class: %s", i, err)
	}
}

func TestContractAddress(t *testing.T) {
	assert.True(t, account.IsContractAddress("KT1ThEdxfUcWUwqsdergy3QnbCWGHSUHeHJq"), "valid contract")
	assert.False(t, account.IsContractAddress(testAddress), "tz1 is not a contract")
	assert.False(t, account.IsContractAddress("KT1ThEdxfUcWUwqsdergy3QnbCWGHSUHeHJr"), "bad checksum")
	assert.False(t, account.IsContractAddress(""), "empty")
}

func TestVerify(t *testing.T) {
	publicKey, err := account.PublicKeyFromBase58(testPublic)
	assert.Nil(t, err, "public key error")
	signature, err := account.SignatureFromBase58(testHello)
	assert.Nil(t, err, "signature error")
	assert.Equal(t, testHello, signature.String(), "signature round trip")

	assert.Nil(t, signature.Verify(publicKey, []byte("hello")), "valid signature rejected")
	err = signature.Verify(publicKey, []byte("hellp"))
	assert.Equal(t, fault.ErrInvalidSignature, err, "altered message accepted")

	wallet, err := account.PublicKeyFromBase58(walletPublic)
	assert.Nil(t, err, "wallet key error")
	walletSig, err := account.SignatureFromBase58(walletSignature)
	assert.Nil(t, err, "wallet signature error")
	assert.Nil(t, walletSig.Verify(wallet, []byte("Hello world")), "wallet signature rejected")

	err = walletSig.Verify(publicKey, []byte("Hello world"))
	assert.Equal(t, fault.ErrInvalidSignature, err, "signature accepted for another key")
}

func TestVerifyMalformed(t *testing.T) {
	publicKey, err := account.PublicKeyFromBase58(testPublic)
	assert.Nil(t, err, "public key error")

	short := account.Signature{
		SignatureInterface: &account.ED25519Signature{Signature: make([]byte, 63)},
	}
	assert.Equal(t, fault.ErrInvalidSignatureLength, short.Verify(publicKey, []byte("hello")), "short signature")

	signature, err := account.SignatureFromBase58(testHello)
	assert.Nil(t, err, "signature error")
	badKey := &account.PublicKey{
		PublicKeyInterface: &account.ED25519PublicKey{PublicKey: make([]byte, 31)},
	}
	assert.Equal(t, fault.ErrInvalidKeyLength, signature.Verify(badKey, []byte("hello")), "short key")

	var empty account.Signature
	assert.Equal(t, fault.ErrInvalidKeyType, empty.Verify(publicKey, []byte("hello")), "empty signature")
	assert.Equal(t, fault.ErrInvalidKeyType, signature.Verify(nil, []byte("hello")), "missing key")
}

func TestPrivateKey(t *testing.T) {
	privateKey, err := account.PrivateKeyFromBase58(testSeed)
	assert.Nil(t, err, "seed error")
	assert.Equal(t, testSeed, privateKey.String(), "seed round trip")
	assert.Equal(t, testPublic, privateKey.PublicKey().String(), "derived public key")

	expanded, err := account.PrivateKeyFromBase58(testExpanded)
	assert.Nil(t, err, "expanded key error")
	assert.Equal(t, privateKey.PrivateKeyBytes(), expanded.PrivateKeyBytes(), "forms should agree")

	signature := privateKey.Sign([]byte("hello"))
	assert.Equal(t, testHello, signature.String(), "deterministic signature")

	_, err = account.PrivateKeyFromBase58(testPublic)
	assert.True(t, fault.IsErrInvalid(err), "public key is not a private key: %s", err)
}

func TestGeneratedKeySigns(t *testing.T) {
	privateKey, err := account.NewPrivateKey(rand.Reader)
	assert.Nil(t, err, "generate error")

	message := []byte("some message")
	signature := privateKey.Sign(message)
	assert.Nil(t, signature.Verify(privateKey.PublicKey(), message), "own signature rejected")

	reparsed, err := account.PrivateKeyFromBase58(privateKey.String())
	assert.Nil(t, err, "reparse error")
	assert.Equal(t, privateKey.PublicKey().String(), reparsed.PublicKey().String(), "reparsed key differs")
}

func TestJSON(t *testing.T) {
	publicKey, err := account.PublicKeyFromBase58(testPublic)
	assert.Nil(t, err, "public key error")
	signature, err := account.SignatureFromBase58(testHello)
	assert.Nil(t, err, "signature error")

	item := struct {
		Key       *account.PublicKey     `json:"pkey"`
		Signature *account.Signature     `json:"signature"`
		Owner     account.PublicKeyHash `json:"owner"`
	}{
		Key:       publicKey,
		Signature: signature,
		Owner:     publicKey.Hash(),
	}
	b, err := json.Marshal(item)
	assert.Nil(t, err, "marshal error")
	expected := `{"pkey":{"Ed25519":"` + testPublic + `"},` +
		`"signature":{"Ed25519":"` + testHello + `"},` +
		`"owner":{"Tz1":"` + testAddress + `"}}`
	assert.Equal(t, expected, string(b), "wrong JSON")

	var decoded struct {
		Key       account.PublicKey     `json:"pkey"`
		Signature account.Signature     `json:"signature"`
		Owner     account.PublicKeyHash `json:"owner"`
	}
	err = json.Unmarshal(b, &decoded)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, testPublic, decoded.Key.String(), "key")
	assert.Equal(t, testHello, decoded.Signature.String(), "signature")
	assert.Equal(t, publicKey.Hash(), decoded.Owner, "owner")
}

func TestJSONInvalid(t *testing.T) {
	var publicKey account.PublicKey
	assert.Equal(t, fault.ErrInvalidKeyType, json.Unmarshal([]byte(`{"Secp256k1":"sppk"}`), &publicKey), "unknown tag")
	assert.Equal(t, fault.ErrInvalidKeyType, json.Unmarshal([]byte(`{}`), &publicKey), "empty object")

	var pkh account.PublicKeyHash
	assert.Equal(t, fault.ErrInvalidKeyType, json.Unmarshal([]byte(`{"Tz2":"tz2"}`), &pkh), "unknown address tag")
	assert.Error(t, json.Unmarshal([]byte(`"`+testAddress+`"`), &pkh), "untagged address")
}
