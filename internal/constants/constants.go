package constants

import "time"

const (
	// Photo prefetch pass of the PDF pipeline.
	PhotoFetchTimeout     = 15 * time.Second
	PhotoFetchConcurrency = 4

	// QR code edge length in pixels before PDF placement.
	QRCodeSizePx = 256

	// Heartbeat keep-warm ping.
	HeartbeatCronSpec = "@every 4m"
	HeartbeatTimeout  = 10 * time.Second

	// Appended to every page of a generated report.
	ReportDisclaimer = "This report reflects the condition of the property as observed on the " +
		"inspection date only. It is not a structural survey or a warranty of any kind. " +
		"Photographs form part of this report and should be viewed together with it."
)
