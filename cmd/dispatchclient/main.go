// dispatchclient calls a running endpointhost's balanceOf and transfer
// methods over the configured transport and prints the decoded result.
package main

import (
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gipsh/ethabi-dispatch/abi"
	"github.com/gipsh/ethabi-dispatch/contract"
	"github.com/gipsh/ethabi-dispatch/examples/erc20"
	"github.com/gipsh/ethabi-dispatch/internal/config"
	"github.com/gipsh/ethabi-dispatch/transport"
)

func main() {
	config.Load()
	log.Printf("dispatchclient starting | host=%s transport=%s", config.HostURL, config.Transport)

	var tf abi.TransportFunc
	switch config.Transport {
	case config.TransportWS:
		ws := transport.NewWSClient(config.HostURL)
		ws.Start()
		defer ws.Stop()
		tf = ws.Transport()
	default:
		tf = transport.NewHTTPClient(config.HostURL, config.DispatchPath).Transport()
	}

	client, err := contract.NewClient(erc20.Spec(), tf)
	if err != nil {
		log.Fatalf("build client: %v", err)
	}

	owner := common.HexToAddress(config.OwnerAddress)

	result, err := client.Call("balanceOf", abi.ValueTypeFromAddress(owner))
	if err != nil {
		log.Fatalf("call balanceOf: %v", err)
	}
	if result != nil {
		if bal, ok := abi.BigIntFromValueType(*result); ok {
			log.Printf("balanceOf(%s) = %s", owner.Hex(), bal.String())
		}
	}

	amount, ok := new(big.Int).SetString(config.TransferAmount, 10)
	if !ok {
		log.Fatalf("invalid TRANSFER_AMOUNT %q", config.TransferAmount)
	}

	result, err = client.Call("transfer", abi.ValueTypeFromAddress(owner), abi.ValueTypeFromBigInt(amount))
	if err != nil {
		log.Fatalf("call transfer: %v", err)
	}
	if result != nil {
		ok, _ := result.AsBool()
		log.Printf("transfer(%s, %s) = %v", owner.Hex(), amount.String(), ok)
	}
}
