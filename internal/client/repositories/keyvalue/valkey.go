package keyvalue

import (
	"context"
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-go"
)

// ValkeyRepository stores entries as plain string keys under a prefix.
type ValkeyRepository struct {
	client valkey.Client
	prefix string
}

func NewValkeyRepository(client valkey.Client, prefix string) *ValkeyRepository {
	return &ValkeyRepository{
		client: client,
		prefix: strings.TrimSuffix(prefix, ":"),
	}
}

// NewValkeyClient dials a single-node Valkey at addr.
func NewValkeyClient(addr string) (valkey.Client, error) {
	c, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("creating a new valkey client: %w", err)
	}
	return c, nil
}

func (r *ValkeyRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Do(ctx, r.client.B().Get().Key(r.key(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("executing get command: %w", err)
	}
	return v, true, nil
}

func (r *ValkeyRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Do(ctx, r.client.B().Set().Key(r.key(key)).Value(value).Build()).Error(); err != nil {
		return fmt.Errorf("executing set command: %w", err)
	}
	return nil
}

func (r *ValkeyRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Do(ctx, r.client.B().Del().Key(r.keys(keys)...).Build()).Error(); err != nil {
		return fmt.Errorf("executing del command: %w", err)
	}
	return nil
}

// Replace runs the deletes and writes inside MULTI/EXEC on a dedicated connection.
func (r *ValkeyRepository) Replace(ctx context.Context, remove []string, values map[string]string) error {
	return r.client.Dedicated(func(c valkey.DedicatedClient) error {
		cmds := []valkey.Completed{c.B().Multi().Build()}
		if len(remove) > 0 {
			cmds = append(cmds, c.B().Del().Key(r.keys(remove)...).Build())
		}
		for k, v := range values {
			cmds = append(cmds, c.B().Set().Key(r.key(k)).Value(v).Build())
		}
		cmds = append(cmds, c.B().Exec().Build())

		resps := c.DoMulti(ctx, cmds...)
		for _, resp := range resps {
			if err := resp.Error(); err != nil {
				return fmt.Errorf("executing transaction: %w", err)
			}
		}

		// Per-command failures only show up inside the EXEC reply.
		replies, err := resps[len(resps)-1].ToArray()
		if err != nil {
			return fmt.Errorf("reading transaction result: %w", err)
		}
		return execError(replies)
	})
}

func (r *ValkeyRepository) List(ctx context.Context) (map[string]string, error) {
	keys, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(keys))
	for _, full := range keys {
		v, err := r.client.Do(ctx, r.client.B().Get().Key(full).Build()).ToString()
		if err != nil {
			if valkey.IsValkeyNil(err) {
				continue
			}
			return nil, fmt.Errorf("executing get command: %w", err)
		}
		result[strings.TrimPrefix(full, r.prefix+":")] = v
	}
	return result, nil
}

func (r *ValkeyRepository) Clear(ctx context.Context) error {
	keys, err := r.scan(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Do(ctx, r.client.B().Del().Key(keys...).Build()).Error(); err != nil {
		return fmt.Errorf("executing del command: %w", err)
	}
	return nil
}

func (r *ValkeyRepository) scan(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		scan, err := r.client.Do(ctx, r.client.B().Scan().Cursor(cursor).Match(r.prefix+":*").Count(100).Build()).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("executing scan command: %w", err)
		}

		keys = append(keys, scan.Elements...)
		cursor = scan.Cursor
		if cursor == 0 {
			return keys, nil
		}
	}
}

func (r *ValkeyRepository) key(k string) string {
	return r.prefix + ":" + k
}

func (r *ValkeyRepository) keys(ks []string) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = r.key(k)
	}
	return out
}

func execError(replies []valkey.ValkeyMessage) error {
	for i, m := range replies {
		if err := m.Error(); err != nil {
			return fmt.Errorf("transaction command %d: %w", i+1, err)
		}
	}
	return nil
}
