package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectSemicolon    Code = 2012
	SynModifierNotAllowed Code = 2015
	SynExpectIdentifier   Code = 2102
	SynExpectType         Code = 2202
	SynExpectExpression   Code = 2203

	// Семантические: имена и циклы
	SemaInfo            Code = 3000
	SemaDuplicateSymbol Code = 3002
	SemaCircularType    Code = 3003
	SemaUnknownSymbol   Code = 3005

	// Type mismatch
	SemaIncompatibleTypes Code = 3010
	SemaNeedMoveOrCopy    Code = 3011
	SemaBadMoveOrCopy     Code = 3012
	SemaImpliedMove       Code = 3013
	SemaNoCommonType      Code = 3014

	// Structural misuse
	SemaUnexpectedExpression Code = 3020
	SemaInvalidTypeKind      Code = 3021
	SemaUnexpectedStatement  Code = 3022
	SemaInvalidNew           Code = 3023
	SemaInvalidCall          Code = 3024
	SemaArgumentCount        Code = 3025
	SemaBadOperator          Code = 3026
	SemaThisOutsideMember    Code = 3027

	// Ownership / mutability
	SemaRValueToRef          Code = 3030
	SemaBadStorage           Code = 3031
	SemaAssignmentToFinal    Code = 3032
	SemaVariableNeedsValue   Code = 3033
	SemaBadVariableType      Code = 3034
	SemaConflictingModifiers Code = 3035
	SemaBadModifier          Code = 3036

	// Inheritance / override
	SemaBadBaseType             Code = 3040
	SemaModifierOverMissingBase Code = 3041
	SemaModifierMissingOver     Code = 3042
	SemaOverrideNotFunctions    Code = 3043
	SemaOverrideDifferentTypes  Code = 3044
	SemaOverrideFinal           Code = 3045
	SemaAbstractNew             Code = 3046
	SemaRecursiveValueType      Code = 3047

	// Member access discipline
	SemaNoMembers                Code = 3050
	SemaUnknownMemberSymbol      Code = 3051
	SemaMemberUnexpectedStatic   Code = 3052
	SemaMemberUnexpectedInstance Code = 3053
	SemaWrongMemberOperator      Code = 3054

	// Control flow
	SemaMissingReturnValue    Code = 3060
	SemaUnexpectedReturnValue Code = 3061

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Ошибки проекта
	ProjInfo      Code = 5000
	ProjNoSources Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                  "Unknown error",
	LexInfo:                      "Lexical information",
	LexUnknownChar:               "Unknown character",
	LexUnterminatedComment:       "Unterminated block comment",
	LexBadNumber:                 "Bad number",
	SynInfo:                      "Syntax information",
	SynUnexpectedToken:           "Unexpected token",
	SynUnclosedDelimiter:         "Unclosed delimiter",
	SynExpectSemicolon:           "Expect semicolon",
	SynModifierNotAllowed:        "Modifier not allowed here",
	SynExpectIdentifier:          "Expect identifier",
	SynExpectType:                "Expect type",
	SynExpectExpression:          "Expect expression",
	SemaInfo:                     "Semantic information",
	SemaDuplicateSymbol:          "Duplicate symbol",
	SemaCircularType:             "Circular type",
	SemaUnknownSymbol:            "Unknown symbol",
	SemaIncompatibleTypes:        "Incompatible types",
	SemaNeedMoveOrCopy:           "Explicit move or copy required",
	SemaBadMoveOrCopy:            "Invalid move or copy",
	SemaImpliedMove:              "Move or copy of a temporary",
	SemaNoCommonType:             "No common type",
	SemaUnexpectedExpression:     "Unexpected expression",
	SemaInvalidTypeKind:          "Invalid type kind",
	SemaUnexpectedStatement:      "Unexpected statement",
	SemaInvalidNew:               "Invalid new expression",
	SemaInvalidCall:              "Invalid call",
	SemaArgumentCount:            "Wrong argument count",
	SemaBadOperator:              "Invalid operand types for operator",
	SemaThisOutsideMember:        "'this' outside of an instance member",
	SemaRValueToRef:              "Temporary bound to reference",
	SemaBadStorage:               "Target is not assignable",
	SemaAssignmentToFinal:        "Assignment to final",
	SemaVariableNeedsValue:       "Variable needs an initial value",
	SemaBadVariableType:          "Invalid variable type",
	SemaConflictingModifiers:     "Conflicting pointer modifiers",
	SemaBadModifier:              "Modifier not allowed here",
	SemaBadBaseType:              "Invalid base type",
	SemaModifierOverMissingBase:  "'over' without a base member",
	SemaModifierMissingOver:      "Missing 'over' modifier",
	SemaOverrideNotFunctions:     "Override of a non-function",
	SemaOverrideDifferentTypes:   "Override with a different signature",
	SemaOverrideFinal:            "Override of a final member",
	SemaAbstractNew:              "Construction of an abstract type",
	SemaRecursiveValueType:       "Recursive value type",
	SemaNoMembers:                "Type has no members",
	SemaUnknownMemberSymbol:      "Unknown member",
	SemaMemberUnexpectedStatic:   "Static member accessed through an instance",
	SemaMemberUnexpectedInstance: "Instance member accessed statically",
	SemaWrongMemberOperator:      "Wrong member access operator",
	SemaMissingReturnValue:       "Missing return value",
	SemaUnexpectedReturnValue:    "Unexpected return value",
	IOLoadFileError:              "I/O load file error",
	ProjInfo:                     "Project information",
	ProjNoSources:                "No source files",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
