package pictureBed

import (
	"context"
	"coucou-server/config"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PictureBed 活动图片存储，基于 S3 兼容的对象存储
type PictureBed struct {
	Endpoint     string
	BaseURL      string
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	Prefix       string
	UsePathStyle bool

	s3Client *s3.Client
}

func NewFromConfig(c config.S3) *PictureBed {
	return &PictureBed{
		Endpoint:     c.Endpoint,
		BaseURL:      c.BaseURL,
		Bucket:       c.Bucket,
		Region:       c.Region,
		AccessKey:    c.AccessKey,
		SecretKey:    c.SecretAccessKey,
		Prefix:       c.Prefix,
		UsePathStyle: c.UsePathStyle,
	}
}

// Enabled 未配置 bucket 时图片功能不可用
func (pb *PictureBed) Enabled() bool {
	return pb != nil && pb.Bucket != ""
}

// InitS3 创建 S3 客户端
func (pb *PictureBed) InitS3(ctx context.Context) error {
	region := pb.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if pb.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(pb.AccessKey, pb.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return err
	}

	pb.s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if pb.Endpoint != "" {
			o.BaseEndpoint = aws.String(pb.Endpoint)
		}
		o.UsePathStyle = pb.UsePathStyle
	})
	return nil
}

// Upload 服务端直传图片，返回访问 URL
func (pb *PictureBed) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if pb.s3Client == nil {
		if err := pb.InitS3(ctx); err != nil {
			return "", fmt.Errorf("初始化 S3 客户端失败: %w", err)
		}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := pb.objectKey(filename)
	uploader := manager.NewUploader(pb.s3Client)
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(pb.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("上传图片失败: %w", err)
	}
	return pb.fileURL(key), nil
}

// objectKey 生成唯一对象 key：前缀/日期/uuid.扩展名
func (pb *PictureBed) objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuid.NewString() + ext
	key := path.Join(strings.Trim(pb.Prefix, "/"), time.Now().Format("20060102"), name)
	return strings.TrimLeft(key, "/")
}

func (pb *PictureBed) fileURL(key string) string {
	base := strings.TrimRight(pb.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(pb.Endpoint, "/")
	}
	if pb.UsePathStyle {
		return base + "/" + pb.Bucket + "/" + key
	}
	return base + "/" + key
}
