package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"net/http"
	"sort"
	"sync"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/sync/errgroup"

	"github.com/dwellcheck/dwellcheck-backend/internal/catalog"
	"github.com/dwellcheck/dwellcheck-backend/internal/constants"
	"github.com/dwellcheck/dwellcheck-backend/internal/models"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

// PDFService turns a hydrated report + property into a paginated
// document. Photo policy: a photo that cannot be fetched is skipped in
// the grid but kept as a hyperlink reference line, so the item section
// always renders. QR failure is non-fatal; only a document that cannot
// be constructed at all fails the render.
type PDFService struct {
	fetcher       PhotoFetcher
	publicBaseURL string
	concurrency   int
}

func NewPDFService(fetcher PhotoFetcher, publicBaseURL string) *PDFService {
	return &PDFService{
		fetcher:       fetcher,
		publicBaseURL: publicBaseURL,
		concurrency:   constants.PhotoFetchConcurrency,
	}
}

// photoAsset is one prefetched photo. Data is nil when the fetch
// failed and the renderer falls back to a link-only reference.
type photoAsset struct {
	data      []byte
	imageType string
}

/* ------------------------------------------------------------------
   Render
------------------------------------------------------------------ */

func (s *PDFService) Render(ctx context.Context, rep *models.Report, prop *models.Property, creatorRole, creatorName string) ([]byte, error) {
	if rep == nil || prop == nil {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeRenderFailure,
			"Report and property are required", utils.ErrRenderFailure)
	}

	assets := s.prefetchPhotos(ctx, rep)
	qrPNG := s.qrCode(rep.ID.String())

	doc, err := s.compose(rep, prop, creatorRole, creatorName, assets, qrPNG)
	if err != nil {
		utils.Logger.WithError(err).Errorf("render report %s", rep.ID)
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeRenderFailure,
			"Could not generate the PDF document", err)
	}
	return doc, nil
}

// prefetchPhotos walks rooms → items → photos and fetches every photo
// with bounded concurrency. One photo's failure never aborts the
// document; the slot is simply absent from the returned map.
func (s *PDFService) prefetchPhotos(ctx context.Context, rep *models.Report) map[string]photoAsset {
	var (
		mu     sync.Mutex
		assets = make(map[string]photoAsset)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, rm := range rep.Rooms {
		for _, it := range rm.Items {
			for _, url := range it.PhotoURLs {
				url := url
				mu.Lock()
				_, seen := assets[url]
				if !seen {
					assets[url] = photoAsset{} // placeholder, claims the slot
				}
				mu.Unlock()
				if seen {
					continue
				}

				g.Go(func() error {
					data, err := s.fetcher.Fetch(gctx, url)
					if err != nil {
						utils.Logger.WithError(err).Warnf("skipping photo %s", url)
						return nil
					}
					imgType := imageTypeFor(data)
					if imgType == "" {
						utils.Logger.Warnf("skipping photo %s: unsupported format", url)
						return nil
					}
					mu.Lock()
					assets[url] = photoAsset{data: data, imageType: imgType}
					mu.Unlock()
					return nil
				})
			}
		}
	}
	_ = g.Wait() // workers never return errors

	return assets
}

// qrCode encodes the public report URL. Returns nil on any failure;
// the document renders without the code.
func (s *PDFService) qrCode(reportID string) []byte {
	target := fmt.Sprintf("%s/public/reports/%s", s.publicBaseURL, reportID)
	code, err := qr.Encode(target, qr.M, qr.Auto)
	if err != nil {
		utils.Logger.WithError(err).Warn("QR generation failed, rendering without code")
		return nil
	}
	code2, err := barcode.Scale(code, constants.QRCodeSizePx, constants.QRCodeSizePx)
	if err != nil {
		utils.Logger.WithError(err).Warn("QR scaling failed, rendering without code")
		return nil
	}
	// barcode.Scale yields a 16-bit grayscale image; the PDF embedder
	// only accepts 8-bit PNGs, so redraw before encoding.
	img := image.NewGray(code2.Bounds())
	draw.Draw(img, img.Bounds(), code2, code2.Bounds().Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		utils.Logger.WithError(err).Warn("QR encoding failed, rendering without code")
		return nil
	}
	return buf.Bytes()
}

// imageTypeFor sniffs the gofpdf image type from the binary. Empty
// string means a format the renderer cannot embed.
func imageTypeFor(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	}
	return ""
}

/* ------------------------------------------------------------------
   Layout
------------------------------------------------------------------ */

const (
	pageMargin  = 12.0
	thumbWidth  = 55.0
	thumbHeight = 42.0
	thumbGap    = 4.0
)

func (s *PDFService) compose(
	rep *models.Report,
	prop *models.Property,
	creatorRole, creatorName string,
	assets map[string]photoAsset,
	qrPNG []byte,
) (out []byte, err error) {
	// gofpdf panics on some malformed inputs; absorb into the single
	// terminal render error instead of crashing the request.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf composition panic: %v", r)
		}
	}()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 22)
	pdf.AliasNbPages("")

	attribution := "Report created"
	if creatorName != "" {
		attribution = fmt.Sprintf("Report created by %s", creatorName)
		if creatorRole != "" {
			attribution += fmt.Sprintf(" (%s)", creatorRole)
		}
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetFont("Helvetica", "I", 6.5)
		pdf.SetTextColor(120, 120, 120)
		pdf.MultiCell(0, 3, constants.ReportDisclaimer, "", "L", false)
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(0, 4, fmt.Sprintf("%s   ·   Page %d of {nb}", attribution, pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	s.composeHeader(pdf, rep, prop, qrPNG)
	s.composeSummary(pdf, rep)

	// Rooms render in creation order even when the caller supplied the
	// payload directly, as the render boundary does.
	rooms := append([]*models.Room(nil), rep.Rooms...)
	sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].Position < rooms[j].Position })
	for _, rm := range rooms {
		s.composeRoom(pdf, rm, assets)
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *PDFService) composeHeader(pdf *gofpdf.Fpdf, rep *models.Report, prop *models.Property, qrPNG []byte) {
	pageW, _ := pdf.GetPageSize()
	textWidth := pageW - 2*pageMargin

	if qrPNG != nil {
		const qrSide = 28.0
		pdf.RegisterImageOptionsReader("report-qr",
			gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
		if pdf.Err() {
			// A code the embedder rejects must not poison the document.
			utils.Logger.Warnf("embedding QR failed, rendering without code: %v", pdf.Error())
			pdf.ClearError()
		} else {
			pdf.ImageOptions("report-qr", pageW-pageMargin-qrSide, pageMargin, qrSide, qrSide,
				false, gofpdf.ImageOptions{ImageType: "PNG"}, 0,
				fmt.Sprintf("%s/public/reports/%s", s.publicBaseURL, rep.ID))
			textWidth -= qrSide + 4
		}
	}

	pdf.SetFont("Helvetica", "B", 17)
	pdf.SetTextColor(30, 30, 30)
	pdf.MultiCell(textWidth, 8, rep.Title, "", "L", false)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(textWidth, 6, fmt.Sprintf("%s (%s)", prop.PropertyName, prop.PropertyType), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.MultiCell(textWidth, 4.5, prop.AddressLine(), "", "L", false)

	gpsLine := fmt.Sprintf("GPS %.6f, %.6f", prop.GPS.Latitude, prop.GPS.Longitude)
	if prop.GPS.AccuracyM != nil {
		gpsLine += fmt.Sprintf(" (±%.0fm)", *prop.GPS.AccuracyM)
	}
	pdf.CellFormat(textWidth, 4.5, gpsLine, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (s *PDFService) composeSummary(pdf *gofpdf.Fpdf, rep *models.Report) {
	itemCount, photoCount := 0, 0
	for _, rm := range rep.Rooms {
		itemCount += len(rm.Items)
		for _, it := range rm.Items {
			photoCount += len(it.PhotoURLs)
		}
	}

	pdf.SetFillColor(243, 244, 246)
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFont("Helvetica", "", 9)
	summary := fmt.Sprintf("Rooms: %d    Items inspected: %d    Photos: %d    Created: %s",
		len(rep.Rooms), itemCount, photoCount, rep.CreatedAt.Format("2 Jan 2006"))
	pdf.CellFormat(0, 8, summary, "", 1, "L", true, 0, "")
	pdf.Ln(3)
}

func (s *PDFService) composeRoom(pdf *gofpdf.Fpdf, rm *models.Room, assets map[string]photoAsset) {
	pdf.SetFillColor(31, 41, 55)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("  %s", rm.Name), "", 1, "L", true, 0, "")

	if rm.Video != nil {
		pdf.SetFont("Helvetica", "U", 8.5)
		pdf.SetTextColor(37, 99, 235)
		pdf.CellFormat(0, 5.5, fmt.Sprintf("Walkthrough video (%ds)", rm.Video.DurationSeconds),
			"", 1, "L", false, 0, rm.Video.URL)
	}
	pdf.Ln(1.5)

	// Item order follows the room type's catalog, not entry sequence.
	items := append([]*models.InspectionItem(nil), rm.Items...)
	sort.SliceStable(items, func(i, j int) bool {
		return catalog.CategoryPosition(rm.RoomType, items[i].CategoryID) <
			catalog.CategoryPosition(rm.RoomType, items[j].CategoryID)
	})
	for _, it := range items {
		s.composeItem(pdf, rm, it, assets)
	}
	pdf.Ln(2)
}

func (s *PDFService) composeItem(pdf *gofpdf.Fpdf, rm *models.Room, it *models.InspectionItem, assets map[string]photoAsset) {
	cat, ok := catalog.CategoryByID(rm.RoomType, it.CategoryID)
	if !ok {
		// Stale category id; render the raw id rather than dropping the rating.
		cat = catalog.Category{ID: it.CategoryID, Name: it.CategoryID}
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(120, 6, cat.Name, "", 0, "L", false, 0, "")

	colour := catalog.ColourFor(it.Condition)
	pdf.SetFillColor(colour.R, colour.G, colour.B)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(34, 6, conditionLabel(it.Condition), "", 1, "C", true, 0, "")

	if cat.Description != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(130, 130, 130)
		pdf.CellFormat(0, 4, cat.Description, "", 1, "L", false, 0, "")
	}

	if it.Notes != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(0, 4.5, it.Notes, "", "L", false)
	}

	s.composePhotoGrid(pdf, it, assets)
	pdf.Ln(3)
}

// composePhotoGrid lays thumbnails three per row. Each thumbnail links
// to the full-resolution original; photos that failed to fetch become
// link-only reference lines below the grid so nothing silently
// disappears.
func (s *PDFService) composePhotoGrid(pdf *gofpdf.Fpdf, it *models.InspectionItem, assets map[string]photoAsset) {
	var missing []string
	perRow := 0
	for idx, url := range it.PhotoURLs {
		asset := assets[url]
		if asset.data == nil {
			missing = append(missing, url)
			continue
		}

		if perRow == 3 {
			pdf.Ln(thumbHeight + thumbGap)
			perRow = 0
		}
		_, pageH := pdf.GetPageSize()
		if pdf.GetY()+thumbHeight > pageH-24 {
			pdf.AddPage()
			perRow = 0
		}

		name := fmt.Sprintf("photo-%s-%d", it.ID, idx)
		pdf.RegisterImageOptionsReader(name,
			gofpdf.ImageOptions{ImageType: asset.imageType}, bytes.NewReader(asset.data))
		x := pageMargin + float64(perRow)*(thumbWidth+thumbGap)
		pdf.ImageOptions(name, x, pdf.GetY(), thumbWidth, thumbHeight,
			false, gofpdf.ImageOptions{ImageType: asset.imageType}, 0, url)
		perRow++
	}
	if perRow > 0 {
		pdf.Ln(thumbHeight + 2)
	}
	for _, url := range missing {
		pdf.SetFont("Helvetica", "IU", 7.5)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 4, "Photo unavailable - view online", "", 1, "L", false, 0, url)
	}
}

func conditionLabel(c catalog.Condition) string {
	switch c {
	case catalog.ConditionGood:
		return "GOOD"
	case catalog.ConditionFair:
		return "FAIR"
	case catalog.ConditionPoor:
		return "POOR"
	case catalog.ConditionUrgentRepair:
		return "URGENT REPAIR"
	case catalog.ConditionNotApplicable:
		return "N/A"
	}
	return string(c)
}
