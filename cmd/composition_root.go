package cmd

import (
	"log/slog"
	"time"

	adapterhttp "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/changefeed"
	"marketplace/internal/adapters/out/postgres/directory"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/realtime"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmCashPaymentCommandHandler() commands.ConfirmCashPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmCashPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateApproveRefundCommandHandler() commands.ApproveRefundCommandHandler {
	var f commands.RefundUoWFactory = FuncRefundUoWFactory(func() commands.RefundUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveRefundCommandHandler(f)
}

func (c *CompositionRoot) CreateRejectRefundCommandHandler() commands.RejectRefundCommandHandler {
	var f commands.RefundUoWFactory = FuncRefundUoWFactory(func() commands.RefundUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectRefundCommandHandler(f)
}

func (c *CompositionRoot) CreateProcessRefundCommandHandler() commands.ProcessRefundCommandHandler {
	var f commands.RefundUoWFactory = FuncRefundUoWFactory(func() commands.RefundUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessRefundCommandHandler(f)
}

func (c *CompositionRoot) CreateListRefundsQueryHandler() queries.ListRefundsQueryHandler {
	return queries.NewListRefundsQueryHandler(
		c.gormDB,
		directory.NewGormAccessPolicy(c.gormDB),
		directory.NewGormGeoDirectory(c.gormDB),
	)
}

func (c *CompositionRoot) CreateGetProviderOrdersQueryHandler() queries.GetProviderOrdersQueryHandler {
	return queries.NewGetProviderOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateAcceptOrderCommandHandler(),
		c.CreateRejectOrderCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateConfirmCashPaymentCommandHandler(),
		c.CreateApproveRefundCommandHandler(),
		c.CreateRejectRefundCommandHandler(),
		c.CreateProcessRefundCommandHandler(),
		c.CreateListRefundsQueryHandler(),
		c.CreateGetProviderOrdersQueryHandler(),
		c.CreateSyncAdapter(),
	)
}

func (c *CompositionRoot) CreateSyncAdapter() *realtime.SyncAdapter {
	pollInterval := realtime.DefaultPollInterval
	if c.config.PollInterval != "" {
		if parsed, err := time.ParseDuration(c.config.PollInterval); err == nil {
			pollInterval = parsed
		}
	}

	return realtime.NewSyncAdapter(
		changefeed.NewPqOrderChangeFeed(c.config.DSN(), c.logger),
		notify.NewLogNotificationPlayer(c.logger),
		c.CreateGetProviderOrdersQueryHandler(),
		c.logger,
		pollInterval,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRefundUoWFactory func() commands.RefundUoW

func (f FuncRefundUoWFactory) Create() commands.RefundUoW {
	return f()
}
