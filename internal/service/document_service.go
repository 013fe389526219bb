package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fundsight-be/internal/dto"
	"fundsight-be/internal/entity"
	"fundsight-be/internal/pkg/logger"
	"fundsight-be/internal/repository/specification"
	"fundsight-be/internal/repository/unitofwork"
	"fundsight-be/pkg/events"
	pktNats "fundsight-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, fundId uuid.UUID, filename string, content io.Reader) (*dto.UploadDocumentResponse, error)
	Status(ctx context.Context, id uuid.UUID) (*dto.DocumentStatusResponse, error)
	GetAllByFund(ctx context.Context, fundId uuid.UUID) ([]*dto.ListDocumentsResponse, error)
	Tables(ctx context.Context, id uuid.UUID) ([]*dto.DocumentTableResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	uploadDir        string
	log              logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	uploadDir string,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		uploadDir:        uploadDir,
		log:              log,
	}
}

// Upload stores the file, records a pending document row against the fund
// and queues it for ingestion. The response carries the id the client
// polls for status.
func (s *documentService) Upload(ctx context.Context, fundId uuid.UUID, filename string, content io.Reader) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	fund, err := uow.FundRepository().FindOne(ctx, specification.ByID{ID: fundId})
	if err != nil {
		return nil, err
	}
	if fund == nil {
		return nil, fmt.Errorf("fund %s not found", fundId)
	}

	documentId := uuid.New()
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	filePath := filepath.Join(s.uploadDir, documentId.String()+filepath.Ext(filename))
	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if _, err := io.Copy(dst, content); err != nil {
		dst.Close()
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	document := entity.Document{
		Id:            documentId,
		FundId:        fundId,
		Filename:      filename,
		FilePath:      filePath,
		ParsingStatus: entity.ParsingStatusPending,
		CreatedAt:     time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	msgPayload := dto.IngestDocumentMessage{
		DocumentId: document.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	// The event bus is auxiliary; a publish failure never fails the upload.
	evt := events.NewDocumentUploaded(document.Id.String(), fundId.String(), filename)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("document-service", "failed to publish DOCUMENT_UPLOADED event", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}

	s.log.Info("document-service", "document accepted for ingestion", map[string]interface{}{
		"document_id": document.Id.String(),
		"fund_id":     fundId.String(),
		"filename":    filename,
	})

	return &dto.UploadDocumentResponse{
		Id:            document.Id,
		Filename:      document.Filename,
		ParsingStatus: string(document.ParsingStatus),
	}, nil
}

func (s *documentService) Status(ctx context.Context, id uuid.UUID) (*dto.DocumentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil
	}

	chunkCount, err := uow.DocumentChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: id})
	if err != nil {
		return nil, err
	}
	tableCount, err := uow.DocumentTableRepository().Count(ctx, specification.ByDocumentID{DocumentID: id})
	if err != nil {
		return nil, err
	}

	return &dto.DocumentStatusResponse{
		Id:            document.Id,
		FundId:        document.FundId,
		Filename:      document.Filename,
		ParsingStatus: string(document.ParsingStatus),
		ErrorMessage:  document.ErrorMessage,
		PageCount:     document.PageCount,
		ChunkCount:    chunkCount,
		TableCount:    tableCount,
		CreatedAt:     document.CreatedAt,
		UpdatedAt:     document.UpdatedAt,
	}, nil
}

func (s *documentService) GetAllByFund(ctx context.Context, fundId uuid.UUID) ([]*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByFundID{FundID: fundId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ListDocumentsResponse, len(documents))
	for i, d := range documents {
		result[i] = &dto.ListDocumentsResponse{
			Id:            d.Id,
			FundId:        d.FundId,
			Filename:      d.Filename,
			ParsingStatus: string(d.ParsingStatus),
			CreatedAt:     d.CreatedAt,
		}
	}
	return result, nil
}

func (s *documentService) Tables(ctx context.Context, id uuid.UUID) ([]*dto.DocumentTableResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tables, err := uow.DocumentTableRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: id},
		specification.OrderBy{Field: "page"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentTableResponse, len(tables))
	for i, t := range tables {
		result[i] = &dto.DocumentTableResponse{
			Id:        t.Id,
			Page:      t.Page,
			TableType: t.TableType,
			TableData: t.TableData,
		}
	}
	return result, nil
}

// Delete removes the document with its chunks and tables in one
// transaction, then the stored file. A missing file is not an error.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentTableRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if document.FilePath != "" {
		if err := os.Remove(document.FilePath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("document-service", "failed to remove stored file", map[string]interface{}{
				"file_path": document.FilePath,
				"error":     err.Error(),
			})
		}
	}

	evt := events.NewDocumentDeleted(document.Id.String(), document.FundId.String())
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("document-service", "failed to publish DOCUMENT_DELETED event", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}

	return nil
}
