package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"bookflow/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CodeLength is the number of digit slots on the verification screen.
const CodeLength = 4

var (
	// ErrCodeExpired means no code is on file for the phone number.
	ErrCodeExpired = errors.New("code not found or expired")
	// ErrCodeMismatch means the entered code does not match the sent one.
	ErrCodeMismatch = errors.New("code does not match")
)

// Provider is the external OTP dispatch/verification service.
type Provider interface {
	Send(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) error
}

// generateCode returns a random numeric code of the given length.
func generateCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		code[i] = '0' + byte(n.Int64())
	}
	return string(code), nil
}

// SendSMSMessage hands the message to the SMS gateway. Replace the body
// with the real provider integration; for now the outgoing message is
// logged.
func SendSMSMessage(phone, message string) error {
	utils.GetLogger().Sugar().Infof("Sending SMS to %s: %s", phone, message)
	return nil
}

// RedisProvider stores dispatched codes in Redis with a TTL and compares
// entries against them on verify.
type RedisProvider struct {
	Client *redis.Client
}

func NewRedisProvider(client *redis.Client) *RedisProvider {
	return &RedisProvider{Client: client}
}

// Send generates a code, caches it under the phone number, and dispatches
// it via SMS.
func (p *RedisProvider) Send(ctx context.Context, phone string) error {
	code, err := generateCode(CodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	key := utils.OTPCachePrefix + phone
	if err := p.Client.Set(ctx, key, code, utils.OTPCodeTTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to dispatch code")
	}

	message := fmt.Sprintf("Votre code Bookflow est: %s. Il expire dans 5 minutes.", code)
	if err := SendSMSMessage(phone, message); err != nil {
		utils.GetLogger().Error("Failed to send OTP via SMS", zap.Error(err))
		return fmt.Errorf("failed to send code")
	}

	utils.GetLogger().Sugar().Infof("Sent OTP to %s (expires in %v)", phone, utils.OTPCodeTTL)
	return nil
}

// Verify compares the provided code to the cached one and deletes it on a
// match.
func (p *RedisProvider) Verify(ctx context.Context, phone, code string) error {
	key := utils.OTPCachePrefix + phone
	stored, err := p.Client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCodeExpired
		}
		return fmt.Errorf("failed to retrieve code: %w", err)
	}

	if stored != code {
		return ErrCodeMismatch
	}

	if err := p.Client.Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}
