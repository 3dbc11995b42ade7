package main

import (
	"testing"

	"github.com/odyssey-erp/catalog/internal/app"
	_ "github.com/odyssey-erp/catalog/internal/testing/guard"
)

func TestMainReturnsInTestMode(t *testing.T) {
	app.RefreshTestMode()
	if !app.InTestMode() {
		t.Fatal("expected test mode to be enabled")
	}
	main()
}
