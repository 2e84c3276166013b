package constants

// Route and upload defaults shared by the router and the controllers.
const (
	ApiRoute     = "/api/v1"
	MetricsRoute = "/metrics"
	// Upload root relative to the working directory
	UploadsPath   = "uploads"
	DefaultModule = "default"
	// Per-file limit when the request names none
	DefaultMaxUploadSize = "10MB"
	// Always rejected, whatever the request asks for
	DefaultExcludedExtensions = "php,phtml,phar,cgi,exe,sh,bat"
)
