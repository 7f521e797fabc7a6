package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
)

func TestCustomerDeleteProtectedByOrders(t *testing.T) {
	customer := &model.Customer{DNI: "30111222", FirstName: "Maria", LastName: "Gomez", Phone: "351123"}
	repo := newStubCustomerRepo(customer)
	repo.orders[customer.ID] = 3
	svc := NewCustomerService(repo)

	err := svc.Delete(context.Background(), customer.ID)

	var conflict *apierror.ReferentialConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(3), conflict.Count)
	assert.Equal(t, "orders_count", conflict.CountKey)
	// Still there.
	_, found := repo.customers[customer.ID]
	assert.True(t, found)
}

func TestCustomerDeleteWithoutOrders(t *testing.T) {
	customer := &model.Customer{DNI: "30111222", FirstName: "Maria", LastName: "Gomez", Phone: "351123"}
	repo := newStubCustomerRepo(customer)
	svc := NewCustomerService(repo)

	require.NoError(t, svc.Delete(context.Background(), customer.ID))
	_, found := repo.customers[customer.ID]
	assert.False(t, found)
}

func TestCustomerCreateAndUpdate(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo)

	created, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		DNI: "28999888", FirstName: "Juan", LastName: "Perez", Phone: "351555",
	})
	require.NoError(t, err)
	assert.Equal(t, "Juan Perez", created.FullName)

	phone := "351777"
	updated, err := svc.Update(context.Background(), mustUUID(t, created.ID), dto.UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "351777", updated.Phone)
	assert.Equal(t, "28999888", updated.DNI)
}
