// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/inbox"
	"github.com/bitmark-inc/tokenrollup/message"
)

const (
	seedA         = "edsk31vznjHSSpGExDMHYASz45VZqXN4DPxvsa4hAyY8dHM28cZzp6"
	publicKeyA    = "edpkuSLWfVU1Vq7Jg9FucPyKmma6otcMHac9zG4oU1KMHSTBpJuGQ2"
	accountA      = "tz1TGu6TN5GSez2ndXXeDX6LgUDvLzPLqgYV"
	receiver      = "tz1QFD9WqLWZmmAuqnnTPPUjfauitYEWdshv"
	bridgeAddress = "KT1ThEdxfUcWUwqsdergy3QnbCWGHSUHeHJq"

	transferDigest    = "5a7221503980aae5c7b975a85b64641a39f99ea933efad082ab04c96758adc2a"
	transferSignature = "edsigtoQd4ZN5zXcUWXx6NQcGF51nWkf8FDDzGj7mPJ66CyGXkbv4s2Mhq8Z4z8vqHdSzqUYZz6bNpKRaADz2TwNdngTEAEwgWh"
)

func run(t *testing.T, arguments ...string) (string, error) {
	w := &bytes.Buffer{}
	e := &bytes.Buffer{}
	app := newApp(w, e)
	err := app.Run(append([]string{"ledger-cli"}, arguments...))
	return w.String(), err
}

func TestGenerate(t *testing.T) {
	out, err := run(t, "generate")
	require.Nil(t, err, "generate")

	result := keyResult{}
	require.Nil(t, json.Unmarshal([]byte(out), &result), "output")

	privateKey, err := account.PrivateKeyFromBase58(result.PrivateKey)
	require.Nil(t, err, "private key")
	assert.Equal(t, result.PublicKey, privateKey.PublicKey().String(), "public key")
	assert.Equal(t, result.Account, privateKey.PublicKey().Hash().String(), "account")
	assert.True(t, strings.HasPrefix(result.Account, "tz1"), "account prefix")
}

func TestAccount(t *testing.T) {
	out, err := run(t, "account", "--key", seedA)
	require.Nil(t, err, "account")

	result := keyResult{}
	require.Nil(t, json.Unmarshal([]byte(out), &result), "output")
	assert.Equal(t, keyResult{PublicKey: publicKeyA, Account: accountA}, result, "result")
	assert.NotContains(t, out, "private_key", "private key is not shown")

	_, err = run(t, "account")
	assert.True(t, fault.IsErrNotFound(err), "missing key: %v", err)

	_, err = run(t, "account", "-k", "edsk")
	assert.NotNil(t, err, "bad key")
}

func TestTransferAndVerify(t *testing.T) {
	out, err := run(t, "transfer", "-k", seedA, "-n", "1", "-t", "1234", "-r", receiver, "-a", "200")
	require.Nil(t, err, "transfer")

	result := transferResult{}
	require.Nil(t, json.Unmarshal([]byte(out), &result), "output")

	assert.Equal(t, accountA, result.Account, "account")
	assert.Equal(t, transferDigest, result.Digest, "digest")
	assert.Contains(t, string(result.Message), transferSignature, "signature")

	external, err := hex.DecodeString(result.External)
	require.Nil(t, err, "external hex")
	assert.Equal(t, byte(message.DefaultDiscriminator), external[0], "discriminator")
	assert.JSONEq(t, string(result.Message), string(external[1:]), "packed message")

	envelope, err := inbox.ParseEnvelope([]byte(result.Envelope))
	require.Nil(t, err, "envelope")
	assert.Equal(t, external, []byte(envelope.External), "envelope data")

	for _, arguments := range [][]string{
		{"verify", "-m", string(result.Message)},
		{"verify", "-x", result.External},
	} {
		out, err = run(t, arguments...)
		require.Nil(t, err, "verify: %s", arguments[1])

		verified := verifyResult{}
		require.Nil(t, json.Unmarshal([]byte(out), &verified), "verify output")
		assert.Equal(t, verifyResult{
			Account:     accountA,
			Nonce:       1,
			Digest:      transferDigest,
			Token:       "1234",
			Destination: receiver,
			Amount:      "200",
			Valid:       true,
		}, verified, "verify: %s", arguments[1])
	}
}

func TestTransferDiscriminator(t *testing.T) {
	out, err := run(t, "-d", "66", "transfer", "-k", seedA, "-n", "3", "-t", "00", "-r", receiver, "-a", "1")
	require.Nil(t, err, "transfer")

	result := transferResult{}
	require.Nil(t, json.Unmarshal([]byte(out), &result), "output")
	assert.True(t, strings.HasPrefix(result.External, "42"), "discriminator 0x42")

	_, err = run(t, "verify", "-x", result.External)
	assert.Equal(t, ErrWrongDiscriminator, err, "default discriminator")

	_, err = run(t, "-d", "66", "verify", "-x", result.External)
	assert.Nil(t, err, "matching discriminator")

	_, err = run(t, "-d", "256", "generate")
	assert.NotNil(t, err, "discriminator out of range")
}

func TestTransferErrors(t *testing.T) {
	items := []struct {
		name      string
		arguments []string
	}{
		{"no key", []string{"transfer", "-n", "1", "-t", "00", "-r", receiver, "-a", "1"}},
		{"no nonce", []string{"transfer", "-k", seedA, "-t", "00", "-r", receiver, "-a", "1"}},
		{"no token", []string{"transfer", "-k", seedA, "-n", "1", "-r", receiver, "-a", "1"}},
		{"bad token", []string{"transfer", "-k", seedA, "-n", "1", "-t", "xyz", "-r", receiver, "-a", "1"}},
		{"contract receiver", []string{"transfer", "-k", seedA, "-n", "1", "-t", "00", "-r", bridgeAddress, "-a", "1"}},
		{"negative amount", []string{"transfer", "-k", seedA, "-n", "1", "-t", "00", "-r", receiver, "-a", "-1"}},
		{"huge amount", []string{"transfer", "-k", seedA, "-n", "1", "-t", "00", "-r", receiver, "-a", "340282366920938463463374607431768211456"}},
	}

	for _, item := range items {
		_, err := run(t, item.arguments...)
		assert.NotNil(t, err, item.name)
	}
}

func TestVerifyRejects(t *testing.T) {
	out, err := run(t, "transfer", "-k", seedA, "-n", "1", "-t", "1234", "-r", receiver, "-a", "200")
	require.Nil(t, err, "transfer")

	result := transferResult{}
	require.Nil(t, json.Unmarshal([]byte(out), &result), "output")

	compact := &bytes.Buffer{}
	require.Nil(t, json.Compact(compact, result.Message), "compact")
	tampered := strings.Replace(compact.String(), `"amount":200`, `"amount":201`, 1)
	require.NotEqual(t, compact.String(), tampered, "tampering applied")
	_, err = run(t, "verify", "-m", tampered)
	assert.Equal(t, fault.ErrInvalidSignature, err, "tampered amount")

	_, err = run(t, "verify", "-m", string(result.Message), "-x", result.External)
	assert.Equal(t, ErrAmbiguousInput, err, "both inputs")

	_, err = run(t, "verify")
	assert.True(t, fault.IsErrNotFound(err), "no input")

	bridge := `{"Bridge":{"account":{"Tz1":"` + receiver + `"},"token":[1],"amount":5}}`
	_, err = run(t, "verify", "-m", bridge)
	assert.Equal(t, ErrNotTransferMessage, err, "bridge message")
}

func TestDeposit(t *testing.T) {
	out, err := run(t, "deposit", "-b", bridgeAddress, "-t", "cafe", "-r", receiver, "-a", "500")
	require.Nil(t, err, "deposit")

	envelope, err := inbox.ParseEnvelope([]byte(strings.TrimSpace(out)))
	require.Nil(t, err, "envelope")
	require.NotNil(t, envelope.Internal, "internal")
	assert.Equal(t, inbox.KindTransfer, envelope.Internal.Kind, "kind")
	assert.Equal(t, bridgeAddress, envelope.Internal.Sender, "sender")
	assert.Equal(t, receiver, envelope.Internal.Source, "source defaults to receiver")
	require.NotNil(t, envelope.Internal.Ticket, "ticket")
	assert.Equal(t, []byte{0xca, 0xfe}, []byte(envelope.Internal.Ticket.Contents), "contents")
	assert.Equal(t, "500", envelope.Internal.Ticket.Amount.String(), "amount")
	assert.Equal(t, receiver, envelope.Internal.Ticket.Receiver, "receiver")

	decoder, err := inbox.NewDecoder(bridgeAddress, message.DefaultDiscriminator)
	require.Nil(t, err, "decoder")
	m, err := decoder.Decode(envelope)
	require.Nil(t, err, "decode")
	deposit, ok := m.(*message.BridgeMessage)
	require.True(t, ok, "bridge message")
	assert.Equal(t, receiver, deposit.Account.String(), "account")

	_, err = run(t, "deposit", "-b", receiver, "-t", "cafe", "-r", receiver, "-a", "500")
	assert.True(t, fault.IsErrInvalid(err), "account as bridge: %v", err)

	_, err = run(t, "deposit", "-b", bridgeAddress, "-s", "nonsense", "-t", "cafe", "-r", receiver, "-a", "500")
	assert.NotNil(t, err, "bad source")
}
