package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// TransactionSender envia transações já assinadas.
type TransactionSender interface {
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// KeypairWalletProvider é uma carteira local baseada em um arquivo de
// chave (formato solana-keygen) ou em uma chave base58.
type KeypairWalletProvider struct {
	source      string
	sender      TransactionSender
	maxLamports uint64 // 0 = sem limite

	mu  sync.Mutex
	key *solana.PrivateKey
}

// NewKeypairWalletProvider cria a carteira. source é um caminho de arquivo
// ou uma chave privada em base58.
func NewKeypairWalletProvider(source string, sender TransactionSender, maxLamports uint64) *KeypairWalletProvider {
	return &KeypairWalletProvider{source: source, sender: sender, maxLamports: maxLamports}
}

func (p *KeypairWalletProvider) IsAvailable() bool {
	if p.source == "" {
		return false
	}
	_, err := p.load()
	return err == nil
}

func (p *KeypairWalletProvider) load() (solana.PrivateKey, error) {
	if _, err := os.Stat(p.source); err == nil {
		return solana.PrivateKeyFromSolanaKeygenFile(p.source)
	}
	return solana.PrivateKeyFromBase58(strings.TrimSpace(p.source))
}

func (p *KeypairWalletProvider) Connect(ctx context.Context) (solana.PublicKey, error) {
	key, err := p.load()
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("falha ao carregar chave da carteira: %w", err)
	}
	p.mu.Lock()
	p.key = &key
	p.mu.Unlock()
	return key.PublicKey(), nil
}

func (p *KeypairWalletProvider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	p.key = nil
	p.mu.Unlock()
	return nil
}

// SignAndSend assina com a chave conectada e envia. Recusa transações cujo
// pagador não é esta carteira ou que gastam acima do limite configurado.
func (p *KeypairWalletProvider) SignAndSend(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	p.mu.Lock()
	key := p.key
	p.mu.Unlock()
	if key == nil {
		return solana.Signature{}, fmt.Errorf("%w: carteira não conectada", ErrProviderDeclined)
	}
	if len(tx.Message.AccountKeys) == 0 || !tx.Message.AccountKeys[0].Equals(key.PublicKey()) {
		return solana.Signature{}, fmt.Errorf("%w: pagador da transação não é esta carteira", ErrProviderDeclined)
	}
	if p.maxLamports > 0 {
		spent, err := systemTransferTotal(tx)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("%w: %v", ErrProviderDeclined, err)
		}
		if spent > p.maxLamports {
			return solana.Signature{}, fmt.Errorf("%w: %d lamports acima do limite de %d", ErrProviderDeclined, spent, p.maxLamports)
		}
	}

	_, err := tx.Sign(func(k solana.PublicKey) *solana.PrivateKey {
		if k.Equals(key.PublicKey()) {
			return key
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("falha ao assinar transação: %w", err)
	}
	return p.sender.SendTransaction(ctx, tx)
}

// systemTransferTotal soma os lamports das instruções de transferência do
// System Program.
func systemTransferTotal(tx *solana.Transaction) (uint64, error) {
	var total uint64
	for _, ci := range tx.Message.Instructions {
		programID, err := tx.Message.Program(ci.ProgramIDIndex)
		if err != nil {
			return 0, err
		}
		if !programID.Equals(solana.SystemProgramID) {
			continue
		}
		accounts, err := ci.ResolveInstructionAccounts(&tx.Message)
		if err != nil {
			return 0, err
		}
		inst, err := system.DecodeInstruction(accounts, ci.Data)
		if err != nil {
			return 0, err
		}
		if transfer, ok := inst.Impl.(*system.Transfer); ok && transfer.Lamports != nil {
			total += *transfer.Lamports
		}
	}
	return total, nil
}
