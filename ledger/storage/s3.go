package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3SheetStore implements SheetStore backed by CSV objects in S3, one
// object per sheet under a common prefix. Range specs are ignored;
// append is read-modify-write, so it shares the same last-writer-wins
// caveats as the rest of the ledger.
type S3SheetStore struct {
	bucket string
	prefix string
	s3     *s3.Client
}

func NewS3SheetStore(s3Client *s3.Client, bucket, prefix string) *S3SheetStore {
	return &S3SheetStore{
		bucket: bucket,
		prefix: prefix,
		s3:     s3Client,
	}
}

func (s *S3SheetStore) key(sheetID string) string {
	return s.prefix + sheetID + ".csv"
}

func (s *S3SheetStore) ReadRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(sheetID)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sheet object from S3: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet object body: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet object: %w", err)
	}
	return rows, nil
}

func (s *S3SheetStore) AppendRows(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	existing, err := s.ReadRange(ctx, sheetID, rangeSpec)
	if err != nil {
		return err
	}
	return s.OverwriteRange(ctx, sheetID, rangeSpec, append(existing, rows...))
}

func (s *S3SheetStore) OverwriteRange(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to encode sheet rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(sheetID)),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("failed to put sheet object to S3: %w", err)
	}
	return nil
}
