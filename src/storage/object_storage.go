package storage

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"
)

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	UseSSL          bool
}

// ObjectStorage S3互換ストレージへのアップローダー。
// 添付ファイルの保存とログファイルの退避に使う
type ObjectStorage struct {
	s3Client *s3.S3
	config   *S3Config
	logger   *logrus.Logger
}

// NewObjectStorage S3アップローダーを作成
func NewObjectStorage(config *S3Config, logger *logrus.Logger) (*ObjectStorage, error) {
	// AWS設定
	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.SecretAccessKey, ""),
		DisableSSL:       aws.Bool(!config.UseSSL),
		S3ForcePathStyle: aws.Bool(true), // MinIOなどのS3互換ストレージ用
	}

	// エンドポイントが指定されている場合（MinIOなど）
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	// セッションを作成
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("AWSセッションの作成に失敗: %v", err)
	}

	return &ObjectStorage{
		s3Client: s3.New(sess),
		config:   config,
		logger:   logger,
	}, nil
}

// UploadAttachment stores attachment content under attachments/<id>/<name>
// and returns the object URL recorded on the file record.
func (u *ObjectStorage) UploadAttachment(id, name, mimeType string, content []byte) (string, error) {
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(name))
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	objectKey := fmt.Sprintf("attachments/%s/%s", id, name)

	// S3にアップロード
	_, err := u.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(u.config.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(mimeType),
		Metadata: map[string]*string{
			"upload-time": aws.String(time.Now().Format(time.RFC3339)),
			"source":      aws.String("taskman-app"),
		},
	})
	if err != nil {
		return "", fmt.Errorf("S3アップロードに失敗: %v", err)
	}

	u.logger.WithFields(logrus.Fields{
		"id":     id,
		"bucket": u.config.Bucket,
		"key":    objectKey,
		"size":   len(content),
	}).Info("添付ファイルをS3にアップロードしました")

	return u.objectURL(objectKey), nil
}

// DeleteAttachment removes all objects stored for an attachment id.
func (u *ObjectStorage) DeleteAttachment(id string) error {
	prefix := fmt.Sprintf("attachments/%s/", id)

	listed, err := u.s3Client.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket: aws.String(u.config.Bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return fmt.Errorf("S3オブジェクトの一覧取得に失敗: %v", err)
	}

	for _, obj := range listed.Contents {
		_, err := u.s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(u.config.Bucket),
			Key:    obj.Key,
		})
		if err != nil {
			return fmt.Errorf("S3オブジェクトの削除に失敗: %v", err)
		}
	}

	return nil
}

// objectURL builds the public URL for an object key
func (u *ObjectStorage) objectURL(objectKey string) string {
	scheme := "https"
	if !u.config.UseSSL {
		scheme = "http"
	}
	if u.config.Endpoint != "" {
		// パススタイル（MinIOなど）
		return fmt.Sprintf("%s://%s/%s/%s", scheme, u.config.Endpoint, u.config.Bucket, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.config.Bucket, u.config.Region, objectKey)
}

// UploadLogFile ログファイルをS3にアップロード
func (u *ObjectStorage) UploadLogFile(filePath string) error {
	// ファイルを開く
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("ファイルの読み込みに失敗: %v", err)
	}
	defer file.Close()

	fileName := filepath.Base(filePath)
	objectKey := fmt.Sprintf("logs/%s", fileName)

	// S3にアップロード
	_, err = u.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(u.config.Bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String("text/plain"),
		Metadata: map[string]*string{
			"upload-time": aws.String(time.Now().Format(time.RFC3339)),
			"source":      aws.String("taskman-app"),
		},
	})

	if err != nil {
		return fmt.Errorf("S3アップロードに失敗: %v", err)
	}

	u.logger.WithFields(logrus.Fields{
		"file":   fileName,
		"bucket": u.config.Bucket,
		"key":    objectKey,
	}).Info("ログファイルをS3にアップロードしました")

	return nil
}

// UploadOldLogs 古いログファイルをアップロードして削除
func (u *ObjectStorage) UploadOldLogs(logDir string, maxAge time.Duration) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("ログディレクトリの読み取りに失敗: %v", err)
	}

	cutoffTime := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		filePath := filepath.Join(logDir, entry.Name())
		fileInfo, err := entry.Info()
		if err != nil {
			u.logger.WithError(err).WithField("file", entry.Name()).Error("ファイル情報の取得に失敗")
			continue
		}

		// ファイルが古い場合はアップロードして削除
		if fileInfo.ModTime().Before(cutoffTime) {
			u.logger.WithFields(logrus.Fields{
				"file":    entry.Name(),
				"modTime": fileInfo.ModTime(),
				"cutoff":  cutoffTime,
			}).Info("古いログファイルをアップロード中")

			if err := u.UploadLogFile(filePath); err != nil {
				u.logger.WithError(err).WithField("file", entry.Name()).Error("ログファイルのアップロードに失敗")
				continue
			}

			// ローカルファイルを削除
			if err := os.Remove(filePath); err != nil {
				u.logger.WithError(err).WithField("file", entry.Name()).Error("ローカルファイルの削除に失敗")
			} else {
				u.logger.WithField("file", entry.Name()).Info("ローカルファイルを削除しました")
			}
		}
	}

	return nil
}

// StartPeriodicUpload 定期的なアップロードを開始
func (u *ObjectStorage) StartPeriodicUpload(logDir string, interval time.Duration, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			u.logger.Info("定期的なログアップロードを開始")
			if err := u.UploadOldLogs(logDir, maxAge); err != nil {
				u.logger.WithError(err).Error("定期的なログアップロードに失敗")
			}
		}
	}()

	u.logger.WithFields(logrus.Fields{
		"interval": interval,
		"maxAge":   maxAge,
	}).Info("定期的なログアップロードを開始しました")
}
