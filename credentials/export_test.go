package credentials

// BuildFormForTest exposes Form.build.
var BuildFormForTest = Form.build

// RequiredForTest exposes required.
var RequiredForTest = required
