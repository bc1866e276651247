package pay

import "testing"

func TestVerifyHMAC(t *testing.T) {
	body := []byte("{\"ok\":true}")
	secret := "secret"
	signature := "f6b4a2841c93f8bf2fb8f2c13d8fb0b6c8e8019f09ee405d248daa8385fad638"
	if !VerifyHMAC(body, signature, secret) {
		t.Fatal("expected signature to be valid")
	}
	if VerifyHMAC(body, "deadbeef", secret) {
		t.Fatal("unexpected valid signature")
	}
	if VerifyHMAC(body, "not-hex", secret) {
		t.Fatal("malformed signature must not validate")
	}
}

func TestSignRoundTrip(t *testing.T) {
	body := []byte("{\"invoice_id\":\"inv-1\",\"status\":\"paid\"}")
	sig := Sign(body, "webhook-key")
	if sig != "254a2d67ed4fe627b05ac29cc35031265d6547467bd78006efc26700e8ec39d6" {
		t.Fatalf("unexpected signature: %s", sig)
	}
	if !VerifyHMAC(body, sig, "webhook-key") {
		t.Fatal("signed body must verify")
	}
	if VerifyHMAC(body, sig, "other-key") {
		t.Fatal("wrong key must not verify")
	}
}
