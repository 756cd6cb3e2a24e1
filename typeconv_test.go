package ubj

import "testing"

func TestAsInt64(t *testing.T) {
	v, err := AsInt64(int64(42))
	if err != nil || v != 42 {
		t.Fatalf("have %v, %v; want 42, nil", v, err)
	}

	v, err = AsInt64(Huge("123"))
	if err != nil || v != 123 {
		t.Fatalf("have %v, %v; want 123, nil", v, err)
	}

	if _, err := AsInt64("not a number"); err == nil {
		t.Fatalf("expected error for string input")
	}

	// A Huge only converts when its whole text is a plain integer;
	// trailing non-digit content must not be silently truncated off.
	if _, err := AsInt64(Huge("12.5")); err == nil {
		t.Fatalf("expected error for non-integer huge")
	}
	if _, err := AsInt64(Huge("7x")); err == nil {
		t.Fatalf("expected error for huge with trailing garbage")
	}
}

func TestAsBytes(t *testing.T) {
	v, err := AsBytes(Bytes("raw"))
	if err != nil || v != "raw" {
		t.Fatalf("have %v, %v; want raw, nil", v, err)
	}

	v, err = AsBytes("text")
	if err != nil || v != "text" {
		t.Fatalf("have %v, %v; want text, nil", v, err)
	}

	if _, err := AsBytes(int64(1)); err == nil {
		t.Fatalf("expected error for int64 input")
	}
}

func TestAsString(t *testing.T) {
	v, err := AsString("hello")
	if err != nil || v != "hello" {
		t.Fatalf("have %v, %v; want hello, nil", v, err)
	}

	v, err = AsString(Huge("3.14"))
	if err != nil || v != "3.14" {
		t.Fatalf("have %v, %v; want 3.14, nil", v, err)
	}

	if _, err := AsString(int64(1)); err == nil {
		t.Fatalf("expected error for int64 input")
	}
}

func TestStringEQ(t *testing.T) {
	if !stringEQ("abc", "abc") {
		t.Fatalf("expected match")
	}
	if stringEQ(int64(1), "1") {
		t.Fatalf("expected no match for non-string type")
	}
	if !stringEQ(Huge("42"), "42") {
		t.Fatalf("expected Huge to compare as its decimal text")
	}
}
