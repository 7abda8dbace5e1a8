package types

import "fmt"

// The SDK's msg service treats sdk.Msg as an alias for gogoproto's
// proto.Message, so every hand-written msg carries the Reset, String
// and ProtoMessage triple alongside its legacy signer surface.

func (msg *MsgCreatePool) Reset()         { *msg = MsgCreatePool{} }
func (msg *MsgCreatePool) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgCreatePool) ProtoMessage()  {}

func (msg *MsgAddLiquidity) Reset()         { *msg = MsgAddLiquidity{} }
func (msg *MsgAddLiquidity) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgAddLiquidity) ProtoMessage()  {}

func (msg *MsgRemoveLiquidity) Reset()         { *msg = MsgRemoveLiquidity{} }
func (msg *MsgRemoveLiquidity) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgRemoveLiquidity) ProtoMessage()  {}

func (msg *MsgSwapExactIn) Reset()         { *msg = MsgSwapExactIn{} }
func (msg *MsgSwapExactIn) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgSwapExactIn) ProtoMessage()  {}

func (msg *MsgSwapExactOut) Reset()         { *msg = MsgSwapExactOut{} }
func (msg *MsgSwapExactOut) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgSwapExactOut) ProtoMessage()  {}

func (msg *MsgUpdateParams) Reset()         { *msg = MsgUpdateParams{} }
func (msg *MsgUpdateParams) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgUpdateParams) ProtoMessage()  {}

func (msg *MsgSetPaused) Reset()         { *msg = MsgSetPaused{} }
func (msg *MsgSetPaused) String() string { return fmt.Sprintf("%+v", *msg) }
func (msg *MsgSetPaused) ProtoMessage()  {}
