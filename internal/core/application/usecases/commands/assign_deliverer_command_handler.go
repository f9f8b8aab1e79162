package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AssignDelivererCommandHandler assigns a user holding the deliverer role to an order.
type AssignDelivererCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
}

func NewAssignDelivererCommandHandler(uowFactory OrderUoWFactory, users ports.UserDirectory) AssignDelivererCommandHandler {
	return AssignDelivererCommandHandler{
		uowFactory: uowFactory,
		users:      users,
	}
}

func (h *AssignDelivererCommandHandler) Handle(ctx context.Context, cmd AssignDelivererCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	user, err := h.users.GetUser(ctx, cmd.DelivererID())
	if err != nil {
		return err
	}
	if user.Role != identity.RoleDeliverer {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivererId", fmt.Errorf("user %s has role %s", user.ID, user.Role))
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.Number())
	if err != nil {
		return err
	}

	if err = aggregate.AssignDeliverer(cmd.DelivererID(), time.Now()); err != nil {
		return err
	}

	if err = repo.UpdateDeliverer(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
