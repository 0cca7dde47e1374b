package exchange

import "testing"

func TestSign(t *testing.T) {
	// Reference vector from the Binance signed-endpoint documentation.
	secret := "NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e3UZjInClVN65XAbvqqM6A7H5fATj0j"
	query := "symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1&recvWindow=5000&timestamp=1499827319559"
	want := "c8db56825ae71d6d79447849e617115f4a920fa2acdcab2b053c4b2838bd6b71"

	if got := Sign(query, secret); got != want {
		t.Errorf("Sign() = %s, want %s", got, want)
	}
}

func TestSignDeterministic(t *testing.T) {
	a := Sign("symbol=BTCUSDT&timestamp=1700000000000", "testsecret")
	b := Sign("symbol=BTCUSDT&timestamp=1700000000000", "testsecret")
	if a != b {
		t.Errorf("Sign not deterministic: %s vs %s", a, b)
	}
	if a != "602823b4810bbbb87775916a63df6d7817c1473676d92214a0a216109fb1c8ec" {
		t.Errorf("unexpected digest: %s", a)
	}
}

func TestEncodeParamsOrder(t *testing.T) {
	ps := []param{
		{"symbol", "BTCUSDT"},
		{"side", "SELL"},
		{"type", "MARKET"},
		{"quantity", "0.5"},
		{"reduceOnly", "true"},
		{"timestamp", "1700000000000"},
	}
	want := "symbol=BTCUSDT&side=SELL&type=MARKET&quantity=0.5&reduceOnly=true&timestamp=1700000000000"
	if got := encodeParams(ps); got != want {
		t.Errorf("encodeParams() = %s, want %s", got, want)
	}
}

func TestEncodeParamsEscaping(t *testing.T) {
	got := encodeParams([]param{{"incomeType", "REALIZED PNL"}})
	if got != "incomeType=REALIZED+PNL" {
		t.Errorf("encodeParams() = %s", got)
	}
}
