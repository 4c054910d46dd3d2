package ingestion

import (
	"context"
	"sync"

	"cargo-dispatch/internal/logger"
	"cargo-dispatch/internal/usecase/shipment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Processor drains queued status update messages with a pool of workers,
// feeding each through the same coordinator path as the HTTP endpoint so
// MQTT reports obey the state machine and reservation rules identically.
type Processor struct {
	service *shipment.Service

	updateChan  chan *StatusUpdateMessage
	workerCount int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewProcessor(service *shipment.Service, workerCount, bufferSize int) *Processor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Processor{
		service:     service,
		updateChan:  make(chan *StatusUpdateMessage, bufferSize),
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (p *Processor) Start() {
	logger.Info("Starting status update processor",
		zap.Int("workers", p.workerCount),
		zap.Int("buffer_size", cap(p.updateChan)),
	)

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Processor) Stop() {
	p.cancel()
	close(p.updateChan)
	p.wg.Wait()
	logger.Info("Status update processor stopped")
}

// Enqueue queues a status update for processing. Messages are dropped when
// the buffer is full; the driver app retries over HTTP.
func (p *Processor) Enqueue(msg *StatusUpdateMessage) {
	select {
	case <-p.ctx.Done():
	case p.updateChan <- msg:
	default:
		logger.Warn("Status update buffer full, dropping message",
			zap.String("shipment_id", msg.ShipmentID),
			zap.String("driver_id", msg.DriverID),
		)
	}
}

func (p *Processor) worker() {
	defer p.wg.Done()
	for msg := range p.updateChan {
		p.handle(msg)
	}
}

func (p *Processor) handle(msg *StatusUpdateMessage) {
	shipmentID, err := uuid.Parse(msg.ShipmentID)
	if err != nil {
		logger.Warn("Invalid shipment ID in status update message",
			zap.String("shipment_id", msg.ShipmentID),
		)
		return
	}
	driverID, err := uuid.Parse(msg.DriverID)
	if err != nil {
		logger.Warn("Invalid driver ID in status update message",
			zap.String("driver_id", msg.DriverID),
		)
		return
	}

	req := &shipment.PostStatusUpdateRequest{
		Status:    msg.Status,
		Note:      msg.Note,
		PhotoURL:  msg.PhotoURL,
		Latitude:  msg.Latitude,
		Longitude: msg.Longitude,
		AccuracyM: msg.AccuracyM,
	}

	if _, err := p.service.PostStatusUpdate(p.ctx, driverID, shipmentID, req); err != nil {
		logger.Warn("Rejected status update from broker",
			zap.String("shipment_id", msg.ShipmentID),
			zap.String("driver_id", msg.DriverID),
			zap.String("status", msg.Status),
			zap.Error(err),
		)
	}
}
