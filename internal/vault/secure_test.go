package vault

import "testing"

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zero(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("Byte %d not cleared: %d", i, v)
		}
	}
	Zero(nil) // must not panic
}

func TestZeroAll(t *testing.T) {
	a := []byte{1}
	b := []byte{2, 3}
	ZeroAll(a, b, nil)
	if a[0] != 0 || b[0] != 0 || b[1] != 0 {
		t.Error("Buffers not cleared")
	}
}

func TestExportConsumesPassword(t *testing.T) {
	password := []byte("correct horse")
	if _, err := ExportModern(testRecord(), password, ExportOptions{Params: fastParams}); err != nil {
		t.Fatalf("ExportModern failed: %v", err)
	}
	for i, v := range password {
		if v != 0 {
			t.Fatalf("Password byte %d not zeroized after export: %d", i, v)
		}
	}
}

func TestImportConsumesPasswordOnFailure(t *testing.T) {
	file, err := ExportModern(testRecord(), pw("correct horse"), ExportOptions{Params: fastParams})
	if err != nil {
		t.Fatalf("ExportModern failed: %v", err)
	}

	password := []byte("wrong password")
	if _, err := ImportModern(file, password); err == nil {
		t.Fatal("Expected import to fail")
	}
	for i, v := range password {
		if v != 0 {
			t.Fatalf("Password byte %d not zeroized after failed import: %d", i, v)
		}
	}
}
