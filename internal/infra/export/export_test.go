package export

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/minibank/minibank/internal/app/teller"
	"github.com/minibank/minibank/internal/infra/journal"
)

func sampleStatement() Statement {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Statement{
		Account: teller.AccountInfo{
			Name:     "Alice",
			BranchID: "BR1234",
			Address:  "123456",
			Balance:  380,
		},
		Entries: []journal.Entry{
			{Address: "123456", Kind: journal.KindDeposit, Amount: 500, Balance: 500, At: at},
			{Address: "123456", Kind: journal.KindWithdrawal, Amount: 120, Balance: 380, At: at.Add(time.Minute)},
		},
	}
}

func TestPDF(t *testing.T) {
	dir := t.TempDir()
	path, err := PDF(dir, sampleStatement())
	if err != nil {
		t.Fatalf("PDF() error: %v", err)
	}
	if !strings.HasSuffix(path, ".pdf") || !strings.Contains(path, "statement_123456_") {
		t.Errorf("unexpected path %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF file is empty")
	}
}

func TestXLSX(t *testing.T) {
	dir := t.TempDir()
	path, err := XLSX(dir, sampleStatement())
	if err != nil {
		t.Fatalf("XLSX() error: %v", err)
	}
	if !strings.HasSuffix(path, ".xlsx") {
		t.Errorf("unexpected path %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("XLSX file is empty")
	}
}

func TestPDF_EmptyHistory(t *testing.T) {
	st := sampleStatement()
	st.Entries = nil
	if _, err := PDF(t.TempDir(), st); err != nil {
		t.Fatalf("PDF() with no entries error: %v", err)
	}
}
