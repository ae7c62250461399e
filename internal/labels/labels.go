// Package labels generates printable barcode and QR label documents for
// physical copies. Each document is a self-contained HTML file that loads a
// third-party rendering script and triggers the print dialog after a fixed
// delay to let the script draw; the file is written to the download
// directory for the operator to open.
package labels

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	barcodeScriptURL = "https://cdn.jsdelivr.net/npm/jsbarcode@3.11.6/dist/JsBarcode.all.min.js"
	qrScriptURL      = "https://cdn.jsdelivr.net/npm/qrcodejs@1.0.0/qrcode.min.js"

	// Render scripts need a moment before print is safe to call.
	printDelayMS = 500
)

// Item is the label payload for one copy.
type Item struct {
	Barcode       string
	Title         string
	LibraryName   string
	ShelfLocation string
}

// BarcodeDocument returns a printable HTML document with a Code128 barcode
// for one copy.
func (it Item) BarcodeDocument() string {
	var b strings.Builder
	writeHead(&b, "Barcode "+it.Barcode, barcodeScriptURL)
	b.WriteString(`<div class="label">`)
	writeCaption(&b, it)
	fmt.Fprintf(&b, `<svg class="code" data-value=%q></svg>`, it.Barcode)
	b.WriteString(`</div>`)
	writeFoot(&b, `document.querySelectorAll(".code").forEach(function (el) { JsBarcode(el, el.dataset.value, {format: "CODE128", displayValue: true}); });`)
	return b.String()
}

// QRDocument returns a printable HTML document with a QR code for one copy.
func (it Item) QRDocument() string {
	var b strings.Builder
	writeHead(&b, "QR "+it.Barcode, qrScriptURL)
	b.WriteString(`<div class="label">`)
	writeCaption(&b, it)
	fmt.Fprintf(&b, `<div class="code" data-value=%q></div>`, it.Barcode)
	b.WriteString(`</div>`)
	writeFoot(&b, `document.querySelectorAll(".code").forEach(function (el) { new QRCode(el, {text: el.dataset.value, width: 128, height: 128}); });`)
	return b.String()
}

// Sheet returns one printable document containing a barcode label for every
// item. Items without a barcode are skipped; the second return value is the
// number of labels on the sheet.
func Sheet(items []Item) (string, int) {
	var b strings.Builder
	writeHead(&b, "Barcode sheet", barcodeScriptURL)
	count := 0
	for _, it := range items {
		if strings.TrimSpace(it.Barcode) == "" {
			continue
		}
		count++
		b.WriteString(`<div class="label">`)
		writeCaption(&b, it)
		fmt.Fprintf(&b, `<svg class="code" data-value=%q></svg>`, it.Barcode)
		b.WriteString(`</div>`)
	}
	writeFoot(&b, `document.querySelectorAll(".code").forEach(function (el) { JsBarcode(el, el.dataset.value, {format: "CODE128", displayValue: true}); });`)
	return b.String(), count
}

// Write stores a document under dir and returns the written path.
func Write(dir, name, doc string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create label dir: %w", err)
	}
	path := filepath.Join(dir, sanitizeName(name)+".html")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write label: %w", err)
	}
	return path, nil
}

func writeHead(b *strings.Builder, title, scriptURL string) {
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(b, "<title>%s</title>", html.EscapeString(title))
	fmt.Fprintf(b, `<script src=%q></script>`, scriptURL)
	b.WriteString(`<style>
body { font-family: sans-serif; margin: 16px; }
.label { text-align: center; padding: 12px; page-break-inside: avoid; }
.caption { font-size: 12px; margin-bottom: 4px; }
.muted { color: #555; font-size: 10px; }
</style></head><body>`)
}

func writeCaption(b *strings.Builder, it Item) {
	fmt.Fprintf(b, `<div class="caption">%s</div>`, html.EscapeString(it.Title))
	sub := it.LibraryName
	if it.ShelfLocation != "" {
		if sub != "" {
			sub += " · "
		}
		sub += it.ShelfLocation
	}
	if sub != "" {
		fmt.Fprintf(b, `<div class="muted">%s</div>`, html.EscapeString(sub))
	}
}

func writeFoot(b *strings.Builder, render string) {
	fmt.Fprintf(b, `<script>
window.addEventListener("load", function () {
  %s
  setTimeout(function () { window.print(); }, %d);
});
</script></body></html>`, render, printDelayMS)
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("label-%d", time.Now().Unix())
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
