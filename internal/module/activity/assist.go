package activity

import (
	"coucou-server/internal/global/pictureBed"
	"coucou-server/internal/global/response"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxImageSize 服务端直传的图片大小上限
const maxImageSize = 10 << 20

type PolishReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// PolishDescription 润色活动描述，生成失败时原样返回，不阻塞创建与编辑
func PolishDescription(c *gin.Context) {
	var req PolishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"description": polisher.Polish(c.Request.Context(), req.Title, req.Description),
	})
}

type PresignReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignImage 返回预签名上传地址，客户端上传后把 file_url 写入活动 images
func PresignImage(c *gin.Context) {
	var req PresignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		response.Fail(c, response.ErrInvalidRequest.WithTips("只支持上传图片"))
		return
	}
	if !bed.Enabled() {
		response.Fail(c, response.ErrStorage.WithTips("未配置对象存储"))
		return
	}

	res, err := bed.GeneratePresignedUploadURL(c.Request.Context(), pictureBed.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		log.Error("生成预签名地址失败", "error", err)
		response.Fail(c, response.ErrStorage.WithOrigin(err))
		return
	}
	response.Success(c, res)
}

// UploadImage 通过服务端上传图片，表单字段为 file
func UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if header.Size > maxImageSize {
		response.Fail(c, response.ErrInvalidRequest.WithTips("图片不能超过 10MB"))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Fail(c, response.ErrInvalidRequest.WithTips("只支持上传图片"))
		return
	}
	if !bed.Enabled() {
		response.Fail(c, response.ErrStorage.WithTips("未配置对象存储"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	defer file.Close()

	url, err := bed.Upload(c.Request.Context(), header.Filename, contentType, file)
	if err != nil {
		log.Error("上传图片失败", "error", err, "filename", header.Filename)
		response.Fail(c, response.ErrStorage.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"url": url})
}
