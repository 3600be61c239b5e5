package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/folio/internal/domain"
)

func TestWriteExport(t *testing.T) {
	doc := domain.DefaultPortfolio()
	doc.Topics = []domain.Topic{{ID: "t1", Title: "Demo", Slug: "demo", Status: domain.StatusDraft}}

	var js bytes.Buffer
	if err := writeExport(&js, "json", doc); err != nil {
		t.Fatalf("json export error = %v", err)
	}
	var back domain.PortfolioData
	if err := json.Unmarshal(js.Bytes(), &back); err != nil {
		t.Fatalf("json export is not valid JSON: %v", err)
	}
	if len(back.Topics) != 1 || back.Topics[0].Status != domain.StatusDraft {
		t.Errorf("json export lost drafts: %+v", back.Topics)
	}

	var y bytes.Buffer
	if err := writeExport(&y, "yaml", doc); err != nil {
		t.Fatalf("yaml export error = %v", err)
	}
	for _, want := range []string{"hero_words:", "slug: demo", "status: draft"} {
		if !strings.Contains(y.String(), want) {
			t.Errorf("yaml export missing %q:\n%s", want, y.String())
		}
	}
}
