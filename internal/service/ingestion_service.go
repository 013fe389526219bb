package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fundsight-be/internal/dto"
	"fundsight-be/internal/entity"
	"fundsight-be/internal/pkg/logger"
	"fundsight-be/internal/repository/specification"
	"fundsight-be/internal/repository/unitofwork"
	"fundsight-be/pkg/chunker"
	"fundsight-be/pkg/embedding"
	"fundsight-be/pkg/events"
	"fundsight-be/pkg/extract"
	"fundsight-be/pkg/ingest"
	pktNats "fundsight-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIngestionConsumerService interface {
	Consume(ctx context.Context) error
}

type ingestionConsumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	pipeline       *ingest.Pipeline
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

// NewIngestionConsumerService wires the watermill subscriber that drains
// pending documents through the ingestion pipeline. The std logger feeds
// the pkg-level pipeline; the structured logger covers the consumer.
func NewIngestionConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	opener extract.Opener,
	provider embedding.EmbeddingProvider,
	chunkCfg chunker.Config,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	stdLogger *log.Logger,
) IIngestionConsumerService {
	store := &repositoryIngestStore{uowFactory: uowFactory}
	return &ingestionConsumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		pipeline:       ingest.NewPipeline(opener, provider, store, chunkCfg, stdLogger),
		eventPublisher: eventPublisher,
		log:            sysLogger,
	}
}

func (cs *ingestionConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *ingestionConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ingestion-service", "failed to unmarshal ingest message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.log.Info("ingestion-service", "processing document", map[string]interface{}{
		"document_id": payload.DocumentId.String(),
	})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.log.Error("ingestion-service", "failed to get document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if document == nil {
		cs.log.Warn("ingestion-service", "document not found", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
		})
		msg.Ack() // Deleted before processing? Ack.
		return
	}

	// The CAS is the single-writer guard: a duplicate delivery finds the
	// document no longer pending and drops out here.
	claimed, err := uow.DocumentRepository().TransitionStatus(ctx, document.Id,
		entity.ParsingStatusPending, entity.ParsingStatusProcessing)
	if err != nil {
		cs.log.Error("ingestion-service", "failed to claim document", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if !claimed {
		// The consumer drains messages one at a time, so a document seen
		// here in processing is a prior run of this same message whose
		// completion transition failed after the chunks were persisted.
		// Finish that transition instead of stranding the document.
		if document.ParsingStatus == entity.ParsingStatusProcessing {
			cs.finishStrandedDocument(ctx, msg, uow, document)
			return
		}
		cs.log.Info("ingestion-service", "document already claimed, skipping", map[string]interface{}{
			"document_id": document.Id.String(),
			"status":      string(document.ParsingStatus),
		})
		msg.Ack()
		return
	}
	// Keep the in-memory entity in step with the CAS so the page-count
	// update below cannot stomp the status back to pending.
	document.ParsingStatus = entity.ParsingStatusProcessing

	result, err := cs.pipeline.Process(ctx, document.Id, document.FilePath)
	if err != nil {
		cs.log.Error("ingestion-service", "ingestion failed", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
		if markErr := uow.DocumentRepository().MarkFailed(ctx, document.Id, err.Error()); markErr != nil {
			cs.log.Error("ingestion-service", "failed to mark document failed", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       markErr.Error(),
			})
		}
		cs.publishEvent(ctx, events.NewDocumentFailed(document.Id.String(), err.Error()))
		msg.Ack() // Terminal: failed documents re-enter only via re-upload
		return
	}

	document.PageCount = result.Pages
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		cs.log.Error("ingestion-service", "failed to record page count", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}

	done, err := uow.DocumentRepository().TransitionStatus(ctx, document.Id,
		entity.ParsingStatusProcessing, entity.ParsingStatusCompleted)
	if err != nil || !done {
		// Nack so the redelivery retries the terminal transition through
		// the stranded-document path above.
		cs.log.Error("ingestion-service", "failed to complete document", map[string]interface{}{
			"document_id": document.Id.String(),
			"done":        done,
			"error":       fmt.Sprintf("%v", err),
		})
		msg.Nack()
		return
	}

	cs.publishEvent(ctx, events.NewDocumentProcessed(
		document.Id.String(), result.Tables, result.Chunks, result.Embedded))

	cs.log.Info("ingestion-service", "document processed", map[string]interface{}{
		"document_id": document.Id.String(),
		"tables":      result.Tables,
		"chunks":      result.Chunks,
		"embedded":    result.Embedded,
	})
	msg.Ack()
}

// finishStrandedDocument retries the processing -> completed transition
// for a document whose pipeline run persisted its output but lost the
// final status write.
func (cs *ingestionConsumerService) finishStrandedDocument(ctx context.Context, msg *message.Message, uow unitofwork.UnitOfWork, document *entity.Document) {
	done, err := uow.DocumentRepository().TransitionStatus(ctx, document.Id,
		entity.ParsingStatusProcessing, entity.ParsingStatusCompleted)
	if err != nil {
		cs.log.Error("ingestion-service", "failed to complete stranded document", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if !done {
		// Already moved to a terminal status in the meantime.
		msg.Ack()
		return
	}

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx, specification.ByDocumentID{DocumentID: document.Id})
	if err != nil {
		cs.log.Warn("ingestion-service", "failed to count chunks for stranded document", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}
	tableCount, err := uow.DocumentTableRepository().Count(ctx, specification.ByDocumentID{DocumentID: document.Id})
	if err != nil {
		cs.log.Warn("ingestion-service", "failed to count tables for stranded document", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
	}
	embedded := 0
	for _, c := range chunks {
		if len(c.EmbeddingValue) > 0 {
			embedded++
		}
	}

	cs.publishEvent(ctx, events.NewDocumentProcessed(
		document.Id.String(), int(tableCount), len(chunks), embedded))

	cs.log.Info("ingestion-service", "document completed on redelivery", map[string]interface{}{
		"document_id": document.Id.String(),
		"chunks":      len(chunks),
		"embedded":    embedded,
	})
	msg.Ack()
}

func (cs *ingestionConsumerService) publishEvent(ctx context.Context, evt events.Event) {
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.log.Warn("ingestion-service", "failed to publish event", map[string]interface{}{
			"event_type": evt.EventType(),
			"error":      err.Error(),
		})
	}
}

// repositoryIngestStore adapts the repositories to the pipeline's Store
// contract. Each call runs against a fresh short-lived unit of work.
type repositoryIngestStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func (s *repositoryIngestStore) SaveTables(ctx context.Context, documentID uuid.UUID, tables []ingest.TableRecord) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entities := make([]*entity.DocumentTable, len(tables))
	for i, t := range tables {
		entities[i] = &entity.DocumentTable{
			Id:         uuid.New(),
			DocumentId: documentID,
			Page:       t.Page,
			TableType:  t.Type,
			TableData:  t.Grid,
		}
	}
	return uow.DocumentTableRepository().CreateBulk(ctx, entities)
}

func (s *repositoryIngestStore) SaveChunks(ctx context.Context, documentID uuid.UUID, chunks []chunker.Chunk) ([]uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: documentID,
			Content:    c.Text,
			Page:       c.Page,
			ChunkIndex: i,
		}
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, entities); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(entities))
	for i, e := range entities {
		ids[i] = e.Id
	}
	return ids, nil
}

func (s *repositoryIngestStore) AttachEmbedding(ctx context.Context, chunkID uuid.UUID, vector []float32) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentChunkRepository().AttachEmbedding(ctx, chunkID, vector)
}
