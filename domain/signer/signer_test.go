package signer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

func allOracles() []Oracle {
	return []Oracle{NewSecp256k1Oracle(), NewBtcecOracle()}
}

func TestSignAndVerify(t *testing.T) {
	message := hashes.Sum([]byte("message"))
	otherMessage := hashes.Sum([]byte("other message"))

	for _, oracle := range allOracles() {
		secretKey, err := oracle.Generate()
		if err != nil {
			t.Fatalf("TestSignAndVerify: %s: Generate: %+v", oracle.Name(), err)
		}
		publicKey, _, err := oracle.PublicKey(secretKey)
		if err != nil {
			t.Fatalf("TestSignAndVerify: %s: PublicKey: %+v", oracle.Name(), err)
		}
		signature, err := oracle.Sign(secretKey, message)
		if err != nil {
			t.Fatalf("TestSignAndVerify: %s: Sign: %+v", oracle.Name(), err)
		}
		if len(signature) != SignatureSize {
			t.Fatalf("TestSignAndVerify: %s: signature is %d bytes", oracle.Name(), len(signature))
		}

		valid, err := oracle.Verify(publicKey, message, signature)
		if err != nil {
			t.Fatalf("TestSignAndVerify: %s: Verify: %+v", oracle.Name(), err)
		}
		if !valid {
			t.Fatalf("TestSignAndVerify: %s: signature did not verify", oracle.Name())
		}

		valid, err = oracle.Verify(publicKey, otherMessage, signature)
		if err != nil {
			t.Fatalf("TestSignAndVerify: %s: Verify: %+v", oracle.Name(), err)
		}
		if valid {
			t.Fatalf("TestSignAndVerify: %s: signature verified for the wrong message", oracle.Name())
		}
	}
}

func TestOraclesAgree(t *testing.T) {
	secp, btc := NewSecp256k1Oracle(), NewBtcecOracle()
	message := hashes.Sum([]byte("cross check"))

	for seed := byte(1); seed < 8; seed++ {
		secretKey := bytes.Repeat([]byte{seed}, SecretKeySize)

		secpKey, secpOdd, err := secp.PublicKey(secretKey)
		if err != nil {
			t.Fatalf("TestOraclesAgree: %+v", err)
		}
		btcKey, btcOdd, err := btc.PublicKey(secretKey)
		if err != nil {
			t.Fatalf("TestOraclesAgree: %+v", err)
		}
		if !bytes.Equal(secpKey, btcKey) || secpOdd != btcOdd {
			t.Fatalf("TestOraclesAgree: public keys differ: %x/%t %x/%t", secpKey, secpOdd, btcKey, btcOdd)
		}

		signature, err := secp.Sign(secretKey, message)
		if err != nil {
			t.Fatalf("TestOraclesAgree: %+v", err)
		}
		valid, err := btc.Verify(btcKey, message, signature)
		if err != nil || !valid {
			t.Fatalf("TestOraclesAgree: btcec rejected a libsecp256k1 signature: %t %+v", valid, err)
		}

		signature, err = btc.Sign(secretKey, message)
		if err != nil {
			t.Fatalf("TestOraclesAgree: %+v", err)
		}
		valid, err = secp.Verify(secpKey, message, signature)
		if err != nil || !valid {
			t.Fatalf("TestOraclesAgree: libsecp256k1 rejected a btcec signature: %t %+v", valid, err)
		}
	}
}

func TestMalformedInputs(t *testing.T) {
	message := hashes.Sum([]byte("message"))
	zeroKey := make([]byte, SecretKeySize)
	offCurve := bytes.Repeat([]byte{0xff}, PublicKeySize)

	for _, oracle := range allOracles() {
		if _, err := oracle.Sign(zeroKey, message); !errors.Is(err, simplicityerrors.ErrInvalidKey) {
			t.Fatalf("TestMalformedInputs: %s: expected ErrInvalidKey for a zero key, got %+v", oracle.Name(), err)
		}
		if _, _, err := oracle.PublicKey([]byte{1, 2, 3}); !errors.Is(err, simplicityerrors.ErrInvalidKey) {
			t.Fatalf("TestMalformedInputs: %s: expected ErrInvalidKey for a short key, got %+v", oracle.Name(), err)
		}
		_, err := oracle.Verify(offCurve, message, make([]byte, SignatureSize))
		if !errors.Is(err, simplicityerrors.ErrInvalidKey) {
			t.Fatalf("TestMalformedInputs: %s: expected ErrInvalidKey, got %+v", oracle.Name(), err)
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{Secp256k1OracleName, BtcecOracleName} {
		oracle, err := ByName(name)
		if err != nil {
			t.Fatalf("TestByName: %+v", err)
		}
		if oracle.Name() != name {
			t.Fatalf("TestByName: expected %s, got %s", name, oracle.Name())
		}
	}
	if _, err := ByName("openssl"); err == nil {
		t.Fatalf("TestByName: expected an error for an unknown oracle")
	}
}
