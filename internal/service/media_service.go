package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	cfg "github.com/maheshrc27/dreamwall/configs"
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const (
	MaxUploadSize  = 10 << 20
	MaxUploadFiles = 5
	webpQuality    = 82
)

type UploadedImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
}

func (u UploadedImage) Image() models.Image {
	return models.Image{PublicID: u.PublicID, URL: u.URL}
}

type MediaService interface {
	Upload(ctx context.Context, fh *multipart.FileHeader) (*UploadedImage, error)
	UploadMany(ctx context.Context, files []*multipart.FileHeader) ([]UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
	FilterImages(images []models.Image) models.Images
}

type mediaService struct {
	store ObjectStore
	media cfg.Media
	host  string
}

func NewMediaService(store ObjectStore, media cfg.Media) MediaService {
	host := ""
	if u, err := url.Parse(media.PublicBaseURL); err == nil {
		host = u.Host
	}
	return &mediaService{store: store, media: media, host: host}
}

// checkHeader rejects files before any bytes are read.
func checkHeader(fh *multipart.FileHeader) error {
	if fh == nil {
		return invalid("No image file provided")
	}
	if fh.Size > MaxUploadSize {
		return invalid(fmt.Sprintf("%s exceeds the 10MB limit", fh.Filename))
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return invalid("Only image files are allowed")
	}
	return nil
}

func (s *mediaService) Upload(ctx context.Context, fh *multipart.FileHeader) (*UploadedImage, error) {
	if err := checkHeader(fh); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxUploadSize {
		return nil, invalid(fmt.Sprintf("%s exceeds the 10MB limit", fh.Filename))
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown || !filetype.IsImage(data) {
		return nil, invalid("Only image files are allowed")
	}

	out := s.process(data, kind)

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	key := id
	if s.media.Folder != "" {
		key = s.media.Folder + "/" + id
	}

	if err := s.store.Put(ctx, key, out.body, out.contentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	return &UploadedImage{
		PublicID: key,
		URL:      s.media.PublicBaseURL + "/" + key,
		Width:    out.width,
		Height:   out.height,
		Format:   out.format,
	}, nil
}

// UploadMany stops at the first failing file.
func (s *mediaService) UploadMany(ctx context.Context, files []*multipart.FileHeader) ([]UploadedImage, error) {
	if len(files) == 0 {
		return nil, invalid("No image files provided")
	}
	if len(files) > MaxUploadFiles {
		return nil, invalid(fmt.Sprintf("At most %d images per upload", MaxUploadFiles))
	}
	for _, fh := range files {
		if err := checkHeader(fh); err != nil {
			return nil, err
		}
	}

	images := make([]UploadedImage, 0, len(files))
	for _, fh := range files {
		img, err := s.Upload(ctx, fh)
		if err != nil {
			return nil, err
		}
		images = append(images, *img)
	}
	return images, nil
}

func (s *mediaService) Delete(ctx context.Context, publicID string) error {
	publicID = strings.TrimPrefix(publicID, "/")
	if publicID == "" {
		return invalid("public id is required")
	}
	return s.store.Delete(ctx, publicID)
}

// FilterImages keeps images that point at our own media host and carry a
// public id.
func (s *mediaService) FilterImages(images []models.Image) models.Images {
	kept := models.Images{}
	for _, img := range images {
		if img.PublicID == "" || img.URL == "" || s.host == "" {
			continue
		}
		u, err := url.Parse(img.URL)
		if err != nil || !strings.EqualFold(u.Host, s.host) {
			continue
		}
		kept = append(kept, img)
	}
	return kept
}

type processed struct {
	body        []byte
	contentType string
	format      string
	width       int
	height      int
}

// process shrinks the image to fit the configured box and re-encodes it.
// Anything that fails to decode is passed through untouched.
func (s *mediaService) process(data []byte, kind types.Type) processed {
	raw := processed{body: data, contentType: kind.MIME.Value, format: kind.Extension}

	img, err := decodeImage(data, kind)
	if err != nil {
		logger.Debug("image not decodable, storing original", zap.String("format", kind.Extension), zap.Error(err))
		return raw
	}

	b := img.Bounds()
	if b.Dx() > s.media.MaxWidth || b.Dy() > s.media.MaxHeight {
		img = imaging.Fit(img, s.media.MaxWidth, s.media.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	out := processed{width: img.Bounds().Dx(), height: img.Bounds().Dy()}
	switch kind.Extension {
	case "png":
		err = imaging.Encode(&buf, img, imaging.PNG)
		out.contentType, out.format = "image/png", "png"
	case "gif":
		err = imaging.Encode(&buf, img, imaging.GIF)
		out.contentType, out.format = "image/gif", "gif"
	case "webp":
		err = webp.Encode(&buf, img, &webp.Options{Quality: webpQuality})
		out.contentType, out.format = "image/webp", "webp"
	default:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(s.media.JPEGQuality))
		out.contentType, out.format = "image/jpeg", "jpg"
	}
	if err != nil {
		logger.Warn("re-encode image failed, storing original", zap.Error(err))
		raw.width, raw.height = b.Dx(), b.Dy()
		return raw
	}
	out.body = buf.Bytes()
	return out
}

func decodeImage(data []byte, kind types.Type) (image.Image, error) {
	switch kind.Extension {
	case "webp":
		return webp.Decode(bytes.NewReader(data))
	case "jpg", "png", "gif":
		return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	default:
		return nil, fmt.Errorf("unsupported image format %q", kind.Extension)
	}
}
