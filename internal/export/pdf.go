/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"gonovel/internal/script"
)

// Screenplay-ish layout in points on A4. Built-in Helvetica keeps text
// vector without embedding.
const (
	pdfMarginPt     = 72.0
	pdfLineHeightPt = 14.0
	pdfBodySizePt   = 11.0
	pdfTitleSizePt  = 16.0
	dialogIndentPt  = 90.0
)

// ExportPDF renders the screenplay draft as a multi-page PDF at outPath.
func ExportPDF(p *script.Project, title, outPath string) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: 595.28, Ht: 841.89}, // A4
		OrientationStr: "P",
	})
	pdf.SetTitle(title, false)
	pdf.SetMargins(pdfMarginPt, pdfMarginPt, pdfMarginPt)
	pdf.SetAutoPageBreak(true, pdfMarginPt)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	bodyW := pageW - 2*pdfMarginPt

	pdf.SetFont("Helvetica", "B", pdfTitleSizePt)
	pdf.MultiCell(bodyW, pdfLineHeightPt+4, title, "", "C", false)
	pdf.Ln(pdfLineHeightPt)

	Walk(p, func(ev Event) {
		switch ev.Kind {
		case EventTitle:
			pdf.Ln(pdfLineHeightPt)
			pdf.SetFont("Helvetica", "B", pdfTitleSizePt)
			pdf.MultiCell(bodyW, pdfLineHeightPt+4, strings.ToUpper(ev.Text), "", "C", false)
			pdf.Ln(pdfLineHeightPt / 2)
		case EventDialog:
			pdf.SetFont("Helvetica", "B", pdfBodySizePt)
			pdf.SetX(pdfMarginPt + dialogIndentPt)
			pdf.MultiCell(bodyW-dialogIndentPt, pdfLineHeightPt, strings.ToUpper(ev.Speaker), "", "L", false)
			pdf.SetFont("Helvetica", "", pdfBodySizePt)
			pdf.SetX(pdfMarginPt + dialogIndentPt/2)
			pdf.MultiCell(bodyW-dialogIndentPt/2, pdfLineHeightPt, ev.Text, "", "L", false)
			pdf.Ln(pdfLineHeightPt / 2)
		case EventNarration, EventPrint:
			pdf.SetFont("Helvetica", "", pdfBodySizePt)
			pdf.MultiCell(bodyW, pdfLineHeightPt, ev.Text, "", "L", false)
			pdf.Ln(pdfLineHeightPt / 2)
		case EventChoice:
			pdf.SetFont("Helvetica", "I", pdfBodySizePt)
			pdf.MultiCell(bodyW, pdfLineHeightPt, "("+ev.Text+")", "", "L", false)
		}
	})

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
