package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/handlers/v1/categories"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/handlers/v1/flows"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/handlers/v1/status"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/logging"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

// Handler builds the router with every operation registered.
func (r *Rest) Handler() http.Handler {
	router := mux.NewRouter()
	api := humamux.New(router, huma.DefaultConfig("NetPay Wallet API", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))

	status.NewHandler(r.Service.Flow).Register(api)

	categories.NewListCategoriesHandler(r.Service.Catalog).Register(api)
	categories.NewListProvidersHandler(r.Service.Catalog).Register(api)

	flows.NewValidateHandler(r.Service.Flow).Register(api)
	flows.NewCreateFlowHandler(r.Service.Flow).Register(api)
	flows.NewGetFlowHandler(r.Service.Flow).Register(api)
	flows.NewCloseFlowHandler(r.Service.Flow).Register(api)
	flows.NewSubmitFlowHandler(r.Service.Flow).Register(api)
	flows.NewCancelFlowHandler(r.Service.Flow).Register(api)
	flows.NewResetFlowHandler(r.Service.Flow).Register(api)

	return router
}

// Serve listens until ctx is done, then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
