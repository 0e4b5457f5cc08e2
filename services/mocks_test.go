package services_test

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"

	"github.com/oxflash/tool/models"
)

type MockWalletProvider struct {
	mock.Mock
}

func (m *MockWalletProvider) IsAvailable() bool {
	return m.Called().Bool(0)
}
func (m *MockWalletProvider) Connect(ctx context.Context) (solana.PublicKey, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.PublicKey), args.Error(1)
}
func (m *MockWalletProvider) Disconnect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockWalletProvider) SignAndSend(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(solana.Signature), args.Error(1)
}

type MockChainReader struct {
	mock.Mock
}

func (m *MockChainReader) GetBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(uint64), args.Error(1)
}
func (m *MockChainReader) GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]models.RawTokenAccount, error) {
	args := m.Called(ctx, owner)
	accounts, _ := args.Get(0).([]models.RawTokenAccount)
	return accounts, args.Error(1)
}

type MockMetadataSource struct {
	mock.Mock
}

func (m *MockMetadataSource) Lookup(ctx context.Context, mint string) (models.TokenMetadata, error) {
	args := m.Called(ctx, mint)
	return args.Get(0).(models.TokenMetadata), args.Error(1)
}

type MockBlockhashSource struct {
	mock.Mock
}

func (m *MockBlockhashSource) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) SignAndSend(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(solana.Signature), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(solana.Signature), args.Error(1)
}

type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) FetchRate(ctx context.Context) (models.ConversionRate, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ConversionRate), args.Error(1)
}

type MockHoldingsFetcher struct {
	mock.Mock
}

func (m *MockHoldingsFetcher) FetchNativeBalance(ctx context.Context, address string) (models.Balance, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(models.Balance), args.Error(1)
}
func (m *MockHoldingsFetcher) FetchTokenHoldings(ctx context.Context, address string) ([]models.TokenHolding, error) {
	args := m.Called(ctx, address)
	holdings, _ := args.Get(0).([]models.TokenHolding)
	return holdings, args.Error(1)
}

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) BuildAndSubmit(ctx context.Context, session models.Session, rate *models.ConversionRate, feeFiatAmount float64, destination solana.PublicKey) (models.TransferRequest, solana.Signature, error) {
	args := m.Called(ctx, session, rate, feeFiatAmount, destination)
	return args.Get(0).(models.TransferRequest), args.Get(1).(solana.Signature), args.Error(2)
}

type MockAwaiter struct {
	mock.Mock
}

func (m *MockAwaiter) Await(ctx context.Context, sig solana.Signature) (models.TransferStatus, error) {
	args := m.Called(ctx, sig)
	return args.Get(0).(models.TransferStatus), args.Error(1)
}
