package parser

import (
	"bitscript/internal/ast"
	"bitscript/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // =
	precTernary        = 2  // ?:
	precLogicalOr      = 3  // ||
	precLogicalAnd     = 4  // &&
	precBitwiseOr      = 5  // |
	precBitwiseXor     = 6  // ^
	precBitwiseAnd     = 7  // &
	precEquality       = 8  // == !=
	precComparison     = 9  // < <= > >=
	precShift          = 10 // << >>
	precAdditive       = 11 // + -
	precMultiplicative = 12 // * / %
	precCast           = 13 // as
)

// getBinaryOperatorPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.Question:
		return precTernary, true
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.KwAs:
		return precCast, false
	default:
		return -1, false // не бинарный оператор
	}
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Assign:  ast.BinaryAssign,
	token.Plus:    ast.BinaryAdd,
	token.Minus:   ast.BinarySub,
	token.Star:    ast.BinaryMul,
	token.Slash:   ast.BinaryDiv,
	token.Percent: ast.BinaryMod,
	token.Shl:     ast.BinaryShl,
	token.Shr:     ast.BinaryShr,
	token.Amp:     ast.BinaryBitAnd,
	token.Pipe:    ast.BinaryBitOr,
	token.Caret:   ast.BinaryBitXor,
	token.AndAnd:  ast.BinaryLogicalAnd,
	token.OrOr:    ast.BinaryLogicalOr,
	token.EqEq:    ast.BinaryEq,
	token.BangEq:  ast.BinaryNotEq,
	token.Lt:      ast.BinaryLess,
	token.LtEq:    ast.BinaryLessEq,
	token.Gt:      ast.BinaryGreater,
	token.GtEq:    ast.BinaryGreaterEq,
}

var unaryOps = map[token.Kind]ast.UnaryOp{
	token.Plus:   ast.UnaryPlus,
	token.Minus:  ast.UnaryMinus,
	token.Bang:   ast.UnaryNot,
	token.Tilde:  ast.UnaryComplement,
	token.Star:   ast.UnaryDeref,
	token.Amp:    ast.UnaryAddressOf,
	token.KwMove: ast.UnaryMove,
	token.KwCopy: ast.UnaryCopy,
}

var pointerModifiers = map[token.Kind]ast.PointerModifier{
	token.KwOwned:  ast.PtrOwned,
	token.KwShared: ast.PtrShared,
	token.KwRef:    ast.PtrRef,
}
