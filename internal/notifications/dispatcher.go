package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher отправляет уведомления о новом бронировании клиенту и мастеру
type Dispatcher struct {
	sender       Sender
	enabled      bool
	ownerEmail   string
	businessName string
	address      string
	logger       Logger
}

// NewDispatcher создает диспетчер уведомлений
func NewDispatcher(sender Sender, enabled bool, ownerEmail, businessName, address string, logger Logger) *Dispatcher {
	return &Dispatcher{
		sender:       sender,
		enabled:      enabled,
		ownerEmail:   ownerEmail,
		businessName: businessName,
		address:      address,
		logger:       logger,
	}
}

// SendConfirmation отправляет подтверждение клиенту и уведомление мастеру
// Каждое письмо отправляется независимо: сбой одного не блокирует другое
func (d *Dispatcher) SendConfirmation(_ context.Context, res *domain.Reservation) error {
	if !d.enabled {
		d.logger.Info("Notifications: disabled, skipping confirmation for id=%s", res.ID)
		return nil
	}

	var errs []error

	if err := d.sender.Send(res.Email, d.clientSubject(), d.clientBody(res)); err != nil {
		d.logger.Error("Notifications: failed to send client email for id=%s: %v", res.ID, err)
		errs = append(errs, fmt.Errorf("client email: %w", err))
	} else {
		d.logger.Info("Notifications: client email sent for id=%s", res.ID)
	}

	if d.ownerEmail != "" {
		if err := d.sender.Send(d.ownerEmail, d.ownerSubject(res), d.ownerBody(res)); err != nil {
			d.logger.Error("Notifications: failed to send owner email for id=%s: %v", res.ID, err)
			errs = append(errs, fmt.Errorf("owner email: %w", err))
		} else {
			d.logger.Info("Notifications: owner email sent for id=%s", res.ID)
		}
	}

	return errors.Join(errs...)
}

func (d *Dispatcher) clientSubject() string {
	return fmt.Sprintf("Confirmación de tu cita en %s", d.businessName)
}

func (d *Dispatcher) clientBody(res *domain.Reservation) string {
	return fmt.Sprintf(
		"Hola %s,\n\n"+
			"Tu cita en %s ha sido confirmada.\n\n"+
			"Fecha: %s\nHora: %s\nDirección: %s\n\n"+
			"Si necesitas cambiar o cancelar tu cita, contesta a este correo o gestiona tu reserva con tu número de teléfono.\n\n"+
			"¡Te esperamos!\n%s",
		res.Name,
		d.businessName,
		res.Date.Format(domain.DateFormat),
		res.StartTime,
		d.address,
		d.businessName,
	)
}

func (d *Dispatcher) ownerSubject(res *domain.Reservation) string {
	return fmt.Sprintf("Nueva reserva: %s a las %s", res.Date.Format(domain.DateFormat), res.StartTime)
}

func (d *Dispatcher) ownerBody(res *domain.Reservation) string {
	return fmt.Sprintf(
		"Nueva reserva registrada.\n\n"+
			"Cliente: %s\nTeléfono: %s\nCorreo: %s\nFecha: %s\nHora: %s\n",
		res.Name,
		res.Phone,
		res.Email,
		res.Date.Format(domain.DateFormat),
		res.StartTime,
	)
}
