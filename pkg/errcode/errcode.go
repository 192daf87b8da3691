package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	WriteConfigError
	ReadConfigError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBServerVersionError
	DBTransactionError
	DBGORMConnectionError

	// Journal errors
	JournalSchemaError
	JournalError
	JournalEmptyError

	// Definition errors
	DefinitionNotFoundError
	DefinitionEmptyError
	DefinitionWriteError
	PlanReadError

	// Configuration errors
	OptionsConflictError
	OptionsMissingError
	UnknownOperationError
	DumpFormatError

	// Relation state errors
	RelationExistsError
	RelationNotFoundError
	UnpopulatedRelationError
	AmbiguousNameError
	InvalidNameError

	// Engine capability errors
	MaterializedViewsUnsupportedError
	ConcurrentRefreshUnsupportedError

	// Lifecycle errors
	IrreversibleOperationError
	StoredDefinitionMismatchError
	CyclicDependencyError
	IndexDefinitionError

	// Function errors
	FunctionExistsError
	FunctionNotFoundError
	FunctionOverloadedError
)
