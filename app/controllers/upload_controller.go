package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/ManuelReschke/foxcms/internal/pkg/constants"
	"github.com/ManuelReschke/foxcms/internal/pkg/env"
	"github.com/ManuelReschke/foxcms/internal/pkg/middleware"
	"github.com/ManuelReschke/foxcms/internal/pkg/upload"
)

type uploadWorkflow struct {
	c        *fiber.Ctx
	resolver upload.Resolver
}

var errUploadResponseHandled = errors.New("upload response already handled")

func HandleUpload(c *fiber.Ctx) error {
	return newUploadWorkflow(c).run()
}

func newUploadWorkflow(c *fiber.Ctx) *uploadWorkflow {
	module := env.GetEnv("APP_MODULE", constants.DefaultModule)
	if m, ok := middleware.GetRouteMatch(c); ok && m.Dispatch().Module != "" {
		module = m.Dispatch().Module
	}

	return &uploadWorkflow{
		c: c,
		resolver: upload.StaticResolver{
			Module: module,
			Root:   env.GetEnv("UPLOAD_ROOT", constants.UploadsPath),
		},
	}
}

func (w *uploadWorkflow) run() error {
	if w.c.Method() != fiber.MethodPost {
		return respondUploadError(w.c, fiber.StatusMethodNotAllowed, "Uploads must be sent with POST")
	}

	form, err := w.parseUploadForm()
	if err != nil {
		if errors.Is(err, errUploadResponseHandled) {
			return nil
		}
		return err
	}

	opts, err := w.options()
	if err != nil {
		return respondUploadError(w.c, fiber.StatusBadRequest, err.Error())
	}

	uploader, err := upload.New(w.resolver, upload.OSFilesystem{}, form, opts)
	if err != nil {
		if errors.Is(err, upload.ErrOutsideUploadRoot) {
			return respondUploadError(w.c, fiber.StatusBadRequest, "Destination must stay inside the upload root")
		}
		var pathErr *upload.PathError
		if errors.As(err, &pathErr) {
			fiberlog.Errorf("[Upload] Destination unavailable: %v", err)
			return respondUploadError(w.c, fiber.StatusInternalServerError, "Upload destination is not available")
		}
		return respondUploadError(w.c, fiber.StatusBadRequest, err.Error())
	}
	uploader.SetSniff(true)

	if err := uploader.Receive(); err != nil {
		return w.handleReceiveError(err)
	}

	files := uploader.AllUploaded(false)
	fiberlog.Infof("[Upload] Received %d field(s) into %s", len(files), uploader.ResolvedDestination())
	return w.c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"destination": uploader.Destination(),
		"files":       files,
	})
}

func (w *uploadWorkflow) parseUploadForm() (*multipart.Form, error) {
	form, err := w.c.MultipartForm()
	if err != nil {
		fiberlog.Errorf("Error parsing multipart form: %v", err)
		return nil, markHandledResponse(respondUploadError(w.c, fiber.StatusBadRequest, fmt.Sprintf("Error parsing upload: %s", err)))
	}

	if len(form.File) == 0 {
		return nil, markHandledResponse(respondUploadError(w.c, fiber.StatusBadRequest, "No file uploaded"))
	}
	return form, nil
}

// options reads the upload rules from the query string.
func (w *uploadWorkflow) options() (upload.Options, error) {
	var opts upload.Options

	if dest := strings.TrimSpace(w.c.Query("destination")); dest != "" {
		if filepath.IsAbs(dest) {
			return opts, errors.New("destination must be relative to the upload root")
		}
		opts.Destination = upload.Some(dest)
	}

	switch rename := w.c.Query("rename"); rename {
	case "":
	case "false", "0":
		opts.Rename = upload.Some[upload.Renamer](nil)
	default:
		pattern := upload.Pattern(rename)
		if err := pattern.Validate(); err != nil {
			return opts, fmt.Errorf("rename: %w", err)
		}
		opts.Rename = upload.Some[upload.Renamer](pattern)
	}

	if ext := w.c.Query("extension"); ext != "" {
		opts.Extension = upload.Some([]string{ext})
	}
	// The server deny-list always applies; exclude can only add to it.
	excluded := []string{env.GetEnv("UPLOAD_EXCLUDE_EXTENSIONS", constants.DefaultExcludedExtensions)}
	if ext := w.c.Query("exclude"); ext != "" {
		excluded = append(excluded, ext)
	}
	if list := upload.SplitExtensions(excluded...); len(list) > 0 {
		opts.ExcludeExtension = upload.Some(list)
	}

	size := upload.SizeRange{ByteString: true}
	size.Max = uploadSizeCeiling()
	if maxSize := w.c.Query("max_size"); maxSize != "" {
		n, err := upload.ParseByteSize(maxSize)
		if err != nil {
			return opts, fmt.Errorf("max_size: %w", err)
		}
		// max_size can only tighten the configured limit
		if n > 0 && n < size.Max {
			size.Max = n
		}
	}
	if minSize := w.c.Query("min_size"); minSize != "" {
		var err error
		if size.Min, err = upload.ParseByteSize(minSize); err != nil {
			return opts, fmt.Errorf("min_size: %w", err)
		}
	}
	opts.Size = upload.Some(size)

	dims := upload.ImageSizeRange{
		MinWidth:  w.c.QueryInt("min_width"),
		MinHeight: w.c.QueryInt("min_height"),
		MaxWidth:  w.c.QueryInt("max_width"),
		MaxHeight: w.c.QueryInt("max_height"),
	}
	if dims != (upload.ImageSizeRange{}) {
		opts.ImageSize = upload.Some(dims)
	}

	return opts, nil
}

// uploadSizeCeiling is the per-file limit configured by UPLOAD_MAX_SIZE.
func uploadSizeCeiling() int64 {
	raw := env.GetEnv("UPLOAD_MAX_SIZE", constants.DefaultMaxUploadSize)
	n, err := upload.ParseByteSize(raw)
	if err != nil || n <= 0 {
		fiberlog.Warnf("[Upload] Invalid UPLOAD_MAX_SIZE %q, using %s", raw, constants.DefaultMaxUploadSize)
		n, _ = upload.ParseByteSize(constants.DefaultMaxUploadSize)
	}
	return n
}

func (w *uploadWorkflow) handleReceiveError(err error) error {
	var valErr *upload.ValidationError
	if errors.As(err, &valErr) {
		return w.c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    "validation_failed",
			"messages": valErr.Messages,
		})
	}

	var renameErr *upload.RenameError
	if errors.As(err, &renameErr) {
		fiberlog.Errorf("[Upload] Rename strategy failed: %v", err)
		return respondUploadError(w.c, fiber.StatusInternalServerError, "Uploaded file could not be renamed")
	}

	fiberlog.Errorf("[Upload] Error storing upload: %v", err)
	return respondUploadError(w.c, fiber.StatusInternalServerError, "Uploaded file could not be stored")
}

func respondUploadError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   strings.ToLower(strings.ReplaceAll(utils.StatusMessage(status), " ", "_")),
		"message": message,
	})
}

func markHandledResponse(err error) error {
	if err != nil {
		return err
	}
	return errUploadResponseHandled
}
