package pictureBed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBed() *PictureBed {
	return &PictureBed{
		Endpoint:     "http://127.0.0.1:9000",
		Bucket:       "coucou",
		Region:       "us-east-1",
		AccessKey:    "ak",
		SecretKey:    "sk",
		Prefix:       "/activity/",
		UsePathStyle: true,
	}
}

func TestObjectKeyAndURL(t *testing.T) {
	pb := newBed()
	key := pb.objectKey("Court.PNG")
	require.True(t, strings.HasPrefix(key, "activity/"))
	require.True(t, strings.HasSuffix(key, ".png"))
	require.Equal(t, "http://127.0.0.1:9000/coucou/"+key, pb.fileURL(key))

	pb.UsePathStyle = false
	pb.BaseURL = "https://img.example.com/"
	require.Equal(t, "https://img.example.com/"+key, pb.fileURL(key))
}

func TestGeneratePresignedUploadURL(t *testing.T) {
	pb := newBed()
	resp, err := pb.GeneratePresignedUploadURL(context.Background(), PresignedUploadRequest{
		Filename:    "court.jpg",
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	require.Equal(t, "PUT", resp.Method)
	require.Contains(t, resp.UploadURL, "X-Amz-Signature=")
	require.Contains(t, resp.UploadURL, resp.FileKey)
	require.Equal(t, "image/jpeg", resp.Headers["Content-Type"])
	require.True(t, strings.HasSuffix(resp.FileURL, resp.FileKey))

	_, err = pb.GeneratePresignedUploadURL(context.Background(), PresignedUploadRequest{})
	require.Error(t, err)
}

func TestEnabled(t *testing.T) {
	require.True(t, newBed().Enabled())
	require.False(t, (&PictureBed{}).Enabled())
	var nilBed *PictureBed
	require.False(t, nilBed.Enabled())
}
