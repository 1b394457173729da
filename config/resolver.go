package config

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jmespath/go-jmespath"
	"github.com/pkg/errors"
)

// Resolver looks up an include() argument and returns its content plus
// a display name to attribute __file__/#line directives to.
type Resolver interface {
	Scheme() string
	Resolve(name string) (content string, displayName string, err error)
}

// LocalResolver searches cfg.IncludePath in order, then falls back to
// a single bounded walk of the working directory matching on suffix,
// per SPEC_FULL.md §6 / the REDESIGN FLAGS note recorded in DESIGN.md.
type LocalResolver struct {
	IncludePath []string
}

func (LocalResolver) Scheme() string { return "" }

func (r LocalResolver) Resolve(name string) (string, string, error) {
	if filepath.IsAbs(name) {
		b, err := os.ReadFile(name)
		if err != nil {
			return "", "", err
		}
		return string(b), name, nil
	}
	for _, dir := range r.IncludePath {
		candidate := filepath.Join(dir, name)
		if b, err := os.ReadFile(candidate); err == nil {
			return string(b), candidate, nil
		}
	}
	// Fallback: bounded suffix-match walk of the working directory,
	// only reached when no configured path yields a hit.
	var found string
	_ = filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || found != "" {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, name) {
			found = path
		}
		return nil
	})
	if found == "" {
		return "", "", errors.Errorf("%s: No such file or directory", name)
	}
	b, err := os.ReadFile(found)
	if err != nil {
		return "", "", err
	}
	return string(b), found, nil
}

// S3Resolver serves include() lookups against an S3 bucket, matching
// on key suffix via a JMESPath filter over the bucket listing before
// fetching the first matching key. This is the domain-stack
// generalization of the local suffix-search behavior for a build farm
// where included fragments live in object storage (SPEC_FULL.md §4.9).
type S3Resolver struct {
	Bucket string
	Prefix string

	client *s3.S3
}

func NewS3Resolver(bucket, prefix string) (*S3Resolver, error) {
	sess, err := session.NewSession(&aws.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "s3 resolver: session")
	}
	return &S3Resolver{Bucket: bucket, Prefix: prefix, client: s3.New(sess)}, nil
}

func (r *S3Resolver) Scheme() string { return "s3://" }

func (r *S3Resolver) Resolve(name string) (string, string, error) {
	name = strings.TrimPrefix(name, r.Scheme())

	out, err := r.client.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket: aws.String(r.Bucket),
		Prefix: aws.String(r.Prefix),
	})
	if err != nil {
		return "", "", errors.Wrapf(err, "s3 resolver: list %s", r.Bucket)
	}

	keys := make([]interface{}, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, map[string]interface{}{"Key": aws.StringValue(obj.Key)})
	}
	filtered, err := jmespath.Search(
		"[?ends_with(Key, `"+name+"`)].Key",
		keys,
	)
	if err != nil {
		return "", "", errors.Wrap(err, "s3 resolver: jmespath filter")
	}
	matches, _ := filtered.([]interface{})
	if len(matches) == 0 {
		return "", "", errors.Errorf("s3://%s/%s%s: no matching object", r.Bucket, r.Prefix, name)
	}
	key, _ := matches[0].(string)

	obj, err := r.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", "", errors.Wrapf(err, "s3 resolver: get %s", key)
	}
	defer obj.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, obj.Body); err != nil {
		return "", "", errors.Wrap(err, "s3 resolver: read body")
	}
	return buf.String(), "s3://" + r.Bucket + "/" + key, nil
}

// ResolveInclude dispatches to the S3 resolver for "s3://"-prefixed
// names when configured, otherwise to the local resolver.
func (c *Config) ResolveInclude(name string) (content, displayName string, err error) {
	if c.Resolver != nil && strings.HasPrefix(name, c.Resolver.Scheme()) && c.Resolver.Scheme() != "" {
		return c.Resolver.Resolve(name)
	}
	return LocalResolver{IncludePath: c.IncludePath}.Resolve(name)
}
