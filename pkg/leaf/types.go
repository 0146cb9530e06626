package leaf

// Registry names of the built-in leaves.
const (
	TypeBlackboardHas     = "BlackboardHas"
	TypeBlackboardSet     = "BlackboardSet"
	TypeBlackboardErase   = "BlackboardErase"
	TypeBlackboardCompare = "BlackboardCompare"
	TypeDebugPrint        = "DebugPrint"
	TypeReturnStatus      = "ReturnStatus"
	TypeWait              = "Wait"
	TypeRandomChance      = "RandomChance"
	TypeRandomFloat       = "RandomFloat"
	TypeVectorMath        = "VectorMath"
	TypeCondition         = "Condition"
	TypeCommand           = "Command"
	TypeSense             = "Sense"
)

// Scopes accepted by the blackboard leaves.
const (
	ScopeAny    = "any"
	ScopeLocal  = "local"
	ScopeGlobal = "global"
)
