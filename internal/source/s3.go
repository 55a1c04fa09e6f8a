package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/eykd/ddata-go/internal/decay"
	"github.com/eykd/ddata-go/internal/nuclide"
)

// S3API is the subset of the S3 client used by S3Bundle.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	s3.ListObjectsV2APIClient
}

// S3Bundle reads a bundle stored under an S3 prefix, with the same layout as Bundle.
type S3Bundle struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Bundle opens s3://bucket/prefix using the default AWS credential chain.
func NewS3Bundle(ctx context.Context, uri string) (*S3Bundle, error) {
	bucket, prefix, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewS3BundleWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// NewS3BundleWithClient returns an S3Bundle backed by client.
func NewS3BundleWithClient(client S3API, bucket, prefix string) *S3Bundle {
	return &S3Bundle{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Name implements Source.
func (b *S3Bundle) Name() string { return "s3" }

// Fetch implements Source.
func (b *S3Bundle) Fetch(ctx context.Context, id nuclide.ID, rad decay.RadType) (string, error) {
	for _, ext := range []string{extCompressed, extCSV} {
		key := path.Join(b.prefix, rad.Code(), id.APIName()+ext)
		out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(b.bucket),
			Key:    aws.String(key),
		})
		if isS3NotFound(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("getting s3://%s/%s: %w", b.bucket, key, err)
		}
		data, err := readPayload(out.Body)
		_ = out.Body.Close()
		if err != nil {
			return "", fmt.Errorf("reading s3://%s/%s: %w", b.bucket, key, err)
		}
		return decodePayload(key, data)
	}
	return "", fmt.Errorf("%s %s: %w", id.Name(), rad, ErrNotFound)
}

// Available implements Source.
func (b *S3Bundle) Available(ctx context.Context, rad decay.RadType) ([]nuclide.ID, error) {
	p := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(path.Join(b.prefix, rad.Code()) + "/"),
	})

	var ids []nuclide.ID
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing s3://%s/%s: %w", b.bucket, b.prefix, err)
		}
		for _, obj := range page.Contents {
			if id, ok := idFromPayloadName(path.Base(aws.ToString(obj.Key))); ok {
				ids = append(ids, id)
			}
		}
	}
	return sortIDs(ids), nil
}

func isS3NotFound(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}

func parseS3URI(uri string) (bucket, prefix string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parsing %q: %w", uri, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("%q is not an s3://bucket/prefix URI", uri)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}
