package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, time.June, 4, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func sequentialIDs() func() uuid.UUID {
	counter := 0
	return func() uuid.UUID {
		counter++
		return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", counter))
	}
}

func newTestService(storage *MemoryStorage, opts ...ServiceOption) (Service, AssetRepository) {
	assets := NewMemoryAssetRepository()
	base := []ServiceOption{
		WithClock(fixedClock()),
		WithIDGenerator(sequentialIDs()),
	}
	return NewService(assets, storage, append(base, opts...)...), assets
}

func TestUploadStoresObjectAndRow(t *testing.T) {
	storage := NewMemoryStorage("https://cdn.example.com")
	svc, assets := newTestService(storage, WithPathPrefix("uploads"))

	asset, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "Site Plan.PDF",
		ContentType: "application/pdf",
		Size:        2048,
		Body:        strings.NewReader("%PDF-1.7"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	wantKey := "uploads/00000000-0000-0000-0000-000000000001.pdf"
	if asset.ObjectKey != wantKey {
		t.Errorf("object key = %q, want %q", asset.ObjectKey, wantKey)
	}
	if asset.URL != "https://cdn.example.com/"+wantKey {
		t.Errorf("url = %q", asset.URL)
	}
	if asset.OriginalName != "Site Plan.PDF" {
		t.Errorf("original name = %q", asset.OriginalName)
	}
	if asset.Size != 2048 {
		t.Errorf("size = %d", asset.Size)
	}
	if !storage.Has(wantKey) {
		t.Error("object missing from storage")
	}

	stored, err := assets.GetByObjectKey(context.Background(), wantKey)
	if err != nil {
		t.Fatalf("row missing after upload: %v", err)
	}
	if stored.ID != asset.ID {
		t.Errorf("row id = %s, want %s", stored.ID, asset.ID)
	}
}

func TestUploadValidation(t *testing.T) {
	svc, _ := newTestService(NewMemoryStorage(""))

	cases := []struct {
		name  string
		input UploadInput
		want  error
	}{
		{
			name:  "missing file name",
			input: UploadInput{ContentType: "image/png", Body: strings.NewReader("x")},
			want:  ErrFileNameRequired,
		},
		{
			name:  "blank content type",
			input: UploadInput{FileName: "a.png", ContentType: "  ", Body: strings.NewReader("x")},
			want:  ErrContentTypeRequired,
		},
		{
			name:  "nil body",
			input: UploadInput{FileName: "a.png", ContentType: "image/png"},
			want:  ErrBodyRequired,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Upload(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUploadWithoutStorage(t *testing.T) {
	svc := NewService(NewMemoryAssetRepository(), nil)
	_, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "a.png",
		ContentType: "image/png",
		Body:        strings.NewReader("x"),
	})
	if !errors.Is(err, ErrStorageRequired) {
		t.Fatalf("err = %v, want ErrStorageRequired", err)
	}
}

func TestUploadStorageFailureWritesNoRow(t *testing.T) {
	storage := NewMemoryStorage("")
	storage.PutErr = errors.New("bucket unreachable")
	svc, assets := newTestService(storage)

	_, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "a.png",
		ContentType: "image/png",
		Body:        strings.NewReader("x"),
	})
	if err == nil {
		t.Fatal("expected upload error")
	}

	rows, err := assets.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("got %d rows after failed upload, want 0", len(rows))
	}
	if storage.Len() != 0 {
		t.Fatalf("got %d objects after failed upload, want 0", storage.Len())
	}
}

type failingAssetRepository struct {
	AssetRepository
	createErr error
}

func (r *failingAssetRepository) Create(ctx context.Context, asset *Asset) (*Asset, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.AssetRepository.Create(ctx, asset)
}

func TestUploadRowFailureRollsBackObject(t *testing.T) {
	storage := NewMemoryStorage("")
	assets := &failingAssetRepository{
		AssetRepository: NewMemoryAssetRepository(),
		createErr:       errors.New("connection reset"),
	}
	svc := NewService(assets, storage,
		WithClock(fixedClock()),
		WithIDGenerator(sequentialIDs()),
	)

	if _, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "a.png",
		ContentType: "image/png",
		Body:        strings.NewReader("x"),
	}); err == nil {
		t.Fatal("expected row insert failure")
	}

	if storage.Len() != 0 {
		t.Fatalf("got %d objects after failed insert, want 0", storage.Len())
	}
	rows, err := assets.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
}

func TestDeleteRemovesRowThenObject(t *testing.T) {
	storage := NewMemoryStorage("")
	svc, assets := newTestService(storage)

	asset, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "a.png",
		ContentType: "image/png",
		Body:        strings.NewReader("x"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(context.Background(), asset.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if storage.Has(asset.ObjectKey) {
		t.Error("object survived delete")
	}
	if _, err := assets.GetByID(context.Background(), asset.ID); err == nil {
		t.Error("row survived delete")
	}

	var notFound *NotFoundError
	if err := svc.Delete(context.Background(), asset.ID); !errors.As(err, &notFound) {
		t.Fatalf("second delete err = %v, want NotFoundError", err)
	}
}

func TestDeleteObjectFailureSurfaces(t *testing.T) {
	storage := NewMemoryStorage("")
	svc, assets := newTestService(storage)

	asset, err := svc.Upload(context.Background(), UploadInput{
		FileName:    "a.png",
		ContentType: "image/png",
		Body:        strings.NewReader("x"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	storage.DeleteErr = errors.New("throttled")
	if err := svc.Delete(context.Background(), asset.ID); err == nil {
		t.Fatal("expected delete error")
	}
	// Row goes first; the object can be retried by an operator.
	if _, err := assets.GetByID(context.Background(), asset.ID); err == nil {
		t.Error("row survived failed object delete")
	}
	if !storage.Has(asset.ObjectKey) {
		t.Error("object unexpectedly removed")
	}
}
