package job

import (
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

type Service struct {
	JobChannel        chan dealModel.ProcessJob
	RequestCount      int64
	DispatcherChannel chan bool
	DealStore         dealModel.DealStore
	BlobStore         dealModel.BlobStore
}

type ServiceConfig struct {
	JobChannel        chan dealModel.ProcessJob
	RequestCount      int64
	DispatcherChannel chan bool
	DealStore         dealModel.DealStore
	BlobStore         dealModel.BlobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		DealStore:         cfg.DealStore,
		BlobStore:         cfg.BlobStore,
	}
}
