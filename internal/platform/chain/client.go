package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// balanceOf(address) selector.
var balanceOfSelector = []byte{0x70, 0xa0, 0x82, 0x31}

const callTimeout = 8 * time.Second

// Client reads ERC-20 balances of the eligibility token over JSON-RPC.
type Client struct {
	ec    *ethclient.Client
	token common.Address
}

func Dial(rpcURL, tokenContract string) (*Client, error) {
	if !common.IsHexAddress(tokenContract) {
		return nil, fmt.Errorf("invalid token contract address: %s", tokenContract)
	}
	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("chain rpc dial: %w", err)
	}
	return &Client{ec: ec, token: common.HexToAddress(tokenContract)}, nil
}

func (c *Client) Close() {
	c.ec.Close()
}

// TokenBalance returns the wallet's balance of the eligibility token in its
// smallest units via an eth_call to balanceOf.
func (c *Client) TokenBalance(ctx context.Context, wallet string) (*big.Int, error) {
	if !common.IsHexAddress(wallet) {
		return nil, fmt.Errorf("invalid wallet address: %s", wallet)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	data := make([]byte, 0, 36)
	data = append(data, balanceOfSelector...)
	data = append(data, common.LeftPadBytes(common.HexToAddress(wallet).Bytes(), 32)...)

	out, err := c.ec.CallContract(ctx, ethereum.CallMsg{To: &c.token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call: %w", err)
	}
	return new(big.Int).SetBytes(out), nil
}
