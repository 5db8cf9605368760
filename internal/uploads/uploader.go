package uploads

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/config"
)

const maxPhotoSide = 512

// Uploader grava fotos de perfil no S3, sempre convertidas para
// webp com lado máximo de 512px.
type Uploader struct {
	client *s3.Client
	bucket string
	region string
}

// NewUploader devolve nil quando o bucket não está configurado; o
// handler de foto responde indisponível nesse caso.
func NewUploader(cfg *config.Config) *Uploader {
	if cfg.S3Bucket == "" {
		return nil
	}

	client := s3.New(s3.Options{
		Region: cfg.AWSRegion,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKey,
			cfg.AWSSecretKey,
			"",
		),
	})

	return &Uploader{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.AWSRegion,
	}
}

// ProfessionalPhoto processa e envia a foto, devolvendo a URL pública.
func (u *Uploader) ProfessionalPhoto(
	ctx context.Context,
	barbershopID uint,
	professionalID uint,
	r io.Reader,
) (string, error) {

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, shrink(src), &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("encoding webp: %w", err)
	}

	key := fmt.Sprintf(
		"barbershops/%d/professionals/%d/%s.webp",
		barbershopID,
		professionalID,
		uuid.NewString(),
	)

	if _, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	}); err != nil {
		return "", fmt.Errorf("uploading photo: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

func shrink(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxPhotoSide && h <= maxPhotoSide {
		return src
	}

	if w >= h {
		h = h * maxPhotoSide / w
		w = maxPhotoSide
	} else {
		w = w * maxPhotoSide / h
		h = maxPhotoSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
