// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message_test

import (
	"encoding/hex"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/message"
	"github.com/bitmark-inc/tokenrollup/token"
)

const (
	senderSeed    = "edsk31vznjHSSpGExDMHYASz45VZqXN4DPxvsa4hAyY8dHM28cZzp6"
	senderPublic  = "edpkuSLWfVU1Vq7Jg9FucPyKmma6otcMHac9zG4oU1KMHSTBpJuGQ2"
	senderAddress = "tz1TGu6TN5GSez2ndXXeDX6LgUDvLzPLqgYV"
	receiver      = "tz1QFD9WqLWZmmAuqnnTPPUjfauitYEWdshv"

	// nonce 1, token 0x1234, 200 to receiver
	expectedDigest    = "5a7221503980aae5c7b975a85b64641a39f99ea933efad082ab04c96758adc2a"
	expectedSignature = "edsigtoQd4ZN5zXcUWXx6NQcGF51nWkf8FDDzGj7mPJ66CyGXkbv4s2Mhq8Z4z8vqHdSzqUYZz6bNpKRaADz2TwNdngTEAEwgWh"
)

func testContent(t *testing.T) message.TransferContent {
	destination, err := account.PublicKeyHashFromBase58(receiver)
	require.Nil(t, err, "receiver")
	return message.TransferContent{
		Token:       token.Token{0x12, 0x34},
		Destination: destination,
		Amount:      token.NewAmount(200),
	}
}

func TestDigest(t *testing.T) {
	inner := message.Inner{
		Nonce:   1,
		Content: testContent(t),
	}
	assert.Equal(t, "11234"+receiver+"200", string(inner.Signable()), "signable text")

	d := inner.Digest()
	assert.Equal(t, expectedDigest, hex.EncodeToString(d[:]), "digest")
	assert.Equal(t, d, inner.Digest(), "repeatable")

	inner.Nonce = 2
	assert.NotEqual(t, d, inner.Digest(), "nonce is covered")
	inner.Nonce = 1
	inner.Content.Amount = token.NewAmount(201)
	assert.NotEqual(t, d, inner.Digest(), "amount is covered")
}

func TestNewTransfer(t *testing.T) {
	privateKey, err := account.PrivateKeyFromBase58(senderSeed)
	require.Nil(t, err, "seed")

	transfer := message.NewTransfer(privateKey, 1, testContent(t))
	assert.Equal(t, message.TransferTag, transfer.Tag(), "tag")
	assert.Equal(t, senderPublic, transfer.PublicKey.String(), "public key")
	assert.Equal(t, senderAddress, transfer.Signer().String(), "signer")
	assert.Equal(t, expectedSignature, transfer.Signature.String(), "signature")
	assert.Nil(t, transfer.Verify(), "verify")

	transfer.Inner.Nonce = 2
	assert.Equal(t, fault.ErrInvalidSignature, transfer.Verify(), "altered nonce")

	transfer.Signature = nil
	assert.Equal(t, fault.ErrInvalidKeyType, transfer.Verify(), "missing signature")
}

func TestTransferJSON(t *testing.T) {
	privateKey, err := account.PrivateKeyFromBase58(senderSeed)
	require.Nil(t, err, "seed")
	transfer := message.NewTransfer(privateKey, 1, testContent(t))

	b, err := message.Marshal(transfer)
	require.Nil(t, err, "marshal")
	expected := `{"Transfer":{` +
		`"pkey":{"Ed25519":"` + senderPublic + `"},` +
		`"signature":{"Ed25519":"` + expectedSignature + `"},` +
		`"inner":{"nonce":1,"content":{"token":[18,52],"destination":{"Tz1":"` + receiver + `"},"amount":200}}}}`
	assert.Equal(t, expected, string(b), "JSON")

	m, err := message.Unmarshal(b)
	require.Nil(t, err, "unmarshal")
	decoded, ok := m.(*message.TransferMessage)
	require.True(t, ok, "wrong variant: %T", m)
	assert.Equal(t, transfer.Inner, decoded.Inner, "inner")
	assert.Nil(t, decoded.Verify(), "verify decoded")

	packed, err := message.Pack(transfer, message.DefaultDiscriminator)
	require.Nil(t, err, "pack")
	assert.Equal(t, byte(0x55), packed[0], "discriminator")
	assert.Equal(t, b, packed[1:], "payload")
}

func TestBridgeJSON(t *testing.T) {
	s := `{"Bridge":{"account":{"Tz1":"` + receiver + `"},"token":[18,52],"amount":"500","extra":true}}`
	m, err := message.Unmarshal([]byte(s))
	require.Nil(t, err, "unmarshal")
	bridge, ok := m.(*message.BridgeMessage)
	require.True(t, ok, "wrong variant: %T", m)
	assert.Equal(t, message.BridgeTag, bridge.Tag(), "tag")
	assert.Equal(t, receiver, bridge.Account.String(), "account")
	assert.Equal(t, "1234", bridge.Token.Hex(), "token")
	assert.Equal(t, token.NewAmount(500), bridge.Amount, "amount")

	b, err := message.Marshal(bridge)
	require.Nil(t, err, "marshal")
	assert.Equal(t, `{"Bridge":{"account":{"Tz1":"`+receiver+`"},"token":[18,52],"amount":500}}`, string(b), "JSON")
}

func TestUnmarshalInvalid(t *testing.T) {
	owner := `{"Tz1":"` + receiver + `"}`
	missing := []string{
		`{"Bridge":{"token":[1],"amount":1}}`,
		`{"Bridge":{"account":` + owner + `,"amount":1}}`,
		`{"Bridge":{"account":` + owner + `,"token":[1]}}`,
		`{"Bridge":{"account":` + owner + `,"token":null,"amount":1}}`,
		`{"Transfer":{"pkey":{"Ed25519":"` + senderPublic + `"},"inner":{}}}`,
		`{"Transfer":{"pkey":{"Ed25519":"` + senderPublic + `"},"signature":{"Ed25519":"` + expectedSignature + `"},"inner":{"nonce":1}}}`,
		`{"Transfer":{"pkey":{"Ed25519":"` + senderPublic + `"},"signature":{"Ed25519":"` + expectedSignature + `"},"inner":{"nonce":1,"content":{"token":[1],"amount":1}}}}`,
	}
	for i, s := range missing {
		_, err := message.Unmarshal([]byte(s))
		assert.True(t, fault.IsErrInvalid(err), "%d: expected missing field, got: %v", i, err)
		assert.True(t, strings.Contains(err.Error(), fault.ErrMissingField.Error()), "%d: %v", i, err)
	}

	kinds := []string{
		`{}`,
		`{"Withdraw":{}}`,
		`{"Bridge":{"account":` + owner + `,"token":[1],"amount":1},"Transfer":{}}`,
	}
	for i, s := range kinds {
		_, err := message.Unmarshal([]byte(s))
		assert.Equal(t, fault.ErrUnknownMessageKind, err, "%d: %s", i, s)
	}

	duplicates := []string{
		`{"Bridge":{"account":` + owner + `,"token":[1],"amount":1},"Bridge":{"account":` + owner + `,"token":[2],"amount":2}}`,
		`{"Bridge":{"account":` + owner + `,"token":[1],"amount":1,"amount":1000}}`,
		`{"Bridge":{"account":` + owner + `,"token":[1],"amount":1,"AMOUNT":1000}}`,
		`{"Transfer":{"pkey":{"Ed25519":"` + senderPublic + `"},"PKey":{"Ed25519":"` + senderPublic + `"},"signature":{"Ed25519":"` + expectedSignature + `"},"inner":{"nonce":1,"content":{}}}}`,
		`{"Transfer":{"pkey":{"Ed25519":"` + senderPublic + `"},"signature":{"Ed25519":"` + expectedSignature + `"},"inner":{"nonce":1,"Nonce":2,"content":{}}}}`,
	}
	for i, s := range duplicates {
		_, err := message.Unmarshal([]byte(s))
		assert.True(t, errors.Is(err, fault.ErrDuplicateField), "%d: expected duplicate field, got: %v", i, err)
	}

	malformed := []string{
		``,
		`[]`,
		`{"Bridge":[]}`,
		`{"Bridge":{"account":` + owner + `,"token":[1],"amount":-1}}`,
		`{"Bridge":{"account":"` + receiver + `","token":[1],"amount":1}}`,
		`{"Transfer":{"pkey":{"Ed25519":"` + senderPublic + `"},"signature":{"Ed25519":"` + expectedSignature + `"},"inner":{"nonce":-1,"content":{}}}}`,
	}
	for i, s := range malformed {
		_, err := message.Unmarshal([]byte(s))
		assert.Error(t, err, "%d: %s", i, s)
	}
}

func TestMarshalInvalid(t *testing.T) {
	_, err := message.Marshal(&message.TransferMessage{})
	assert.Equal(t, fault.ErrMissingField, err, "empty transfer")
	_, err = message.Marshal(nil)
	assert.Equal(t, fault.ErrUnknownMessageKind, err, "nil message")
}

func TestNonceNext(t *testing.T) {
	n, err := message.Nonce(0).Next()
	assert.Nil(t, err, "next")
	assert.Equal(t, message.Nonce(1), n, "next")

	_, err = message.Nonce(math.MaxUint64).Next()
	assert.Equal(t, fault.ErrInvalidNonce, err, "exhausted")
}
