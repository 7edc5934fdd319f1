package customer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (_m *MockStore) Load(ctx context.Context) (Collection, error) {
	ret := _m.Called(ctx)

	var r0 Collection
	if rf, ok := ret.Get(0).(func(context.Context) Collection); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(Collection)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockStore) Save(ctx context.Context, customers Collection) error {
	ret := _m.Called(ctx, customers)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, Collection) error); ok {
		r0 = rf(ctx, customers)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

var _ Store = (*MockStore)(nil)
