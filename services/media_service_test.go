package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateImageUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		want     error
	}{
		{"png ok", "avatar.png", 1024, nil},
		{"upper case ext", "ME.JPG", 1024, nil},
		{"gif ok", "a.gif", 10, nil},
		{"too large", "avatar.png", 6 << 20, ErrImageTooLarge},
		{"bmp rejected", "cat.bmp", 10, ErrImageUnsupported},
		{"no ext", "avatar", 10, ErrImageUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageUpload(tt.filename, tt.size, 5<<20)
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUploadImageDisabled(t *testing.T) {
	mediaService = nil
	_, _, err := UploadImage(context.Background(), strings.NewReader("x"), "", ProfileImageFolder)
	if !errors.Is(err, ErrMediaDisabled) {
		t.Fatalf("got %v, want ErrMediaDisabled", err)
	}
	if err := DeleteImage(context.Background(), "abc"); err != nil {
		t.Fatalf("DeleteImage should be a no-op when disabled: %v", err)
	}
}
